// Package api serves the read-only HTTP query surface of the YNX indexer.
// @title YNX Indexer API
// @version 1.0
// @description Blocks, transactions, validators and governance metadata indexed from a YNX node
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @basePath /
// @schemes http https
package api
