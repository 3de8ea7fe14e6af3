// Package main is the entry point for x402dash.
//
//	@title						x402dash API
//	@version					1.0
//	@description				Usage and spending ledger for x402 payment-gated APIs, with seller and buyer dashboards.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@securityDefinitions.basic	BasicAuth
package main

func main() {
	Execute()
}
