// Package swagger holds the OpenAPI document served at /.well-known/openapi.json.
// Regenerate with: swag init -g cmd/x402dash/main.go -o docs/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Liveness check",
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					}
				}
			}
		},
		"/health/live": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Liveness check",
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					}
				}
			}
		},
		"/health/ready": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Health"
				],
				"summary": "Readiness check",
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/http.HealthResponse"
						}
					}
				}
			}
		},
		"/version": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"System"
				],
				"summary": "Get service version",
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/http.VersionResponse"
						}
					}
				}
			}
		},
		"/x402-dashboard/api/overview": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Seller overview",
				"parameters": [
					{
						"type": "string",
						"description": "Tenant filter",
						"name": "tenantId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dashboard.OverviewView"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/agents/top": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Top agents",
				"parameters": [
					{
						"type": "string",
						"description": "Tenant filter",
						"name": "tenantId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status filter",
						"name": "status",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Maximum groups",
						"name": "limit",
						"in": "query",
						"default": 10
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dashboard.GroupView"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/endpoints/top": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Top endpoints",
				"parameters": [
					{
						"type": "string",
						"description": "Tenant filter",
						"name": "tenantId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status filter",
						"name": "status",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Maximum groups",
						"name": "limit",
						"in": "query",
						"default": 10
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dashboard.GroupView"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/status": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Events by status",
				"parameters": [
					{
						"type": "string",
						"description": "Tenant filter",
						"name": "tenantId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dashboard.GroupView"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/daily": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Daily activity",
				"parameters": [
					{
						"type": "string",
						"description": "Tenant filter",
						"name": "tenantId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status filter",
						"name": "status",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/aggregate.DateBucket"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/events": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "List events",
				"parameters": [
					{
						"type": "string",
						"description": "Tenant filter",
						"name": "tenantId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status filter",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Zero-based page",
						"name": "page",
						"in": "query",
						"default": 0
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "size",
						"in": "query",
						"default": 50
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Log event",
				"parameters": [
					{
						"description": "Event",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dashboard.UsageEventRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/usage.Event"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/events/recent": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Recent events",
				"parameters": [
					{
						"type": "string",
						"description": "Tenant or agent id",
						"name": "tenantId",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Maximum events",
						"name": "limit",
						"in": "query",
						"default": 20
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/usage.Event"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/events/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Get event",
				"parameters": [
					{
						"type": "string",
						"description": "Event ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/usage.Event"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/demo/generate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Generate demo data",
				"parameters": [
					{
						"type": "integer",
						"description": "Events to generate",
						"name": "count",
						"in": "query",
						"default": 100
					},
					{
						"type": "integer",
						"description": "Days to spread over",
						"name": "days",
						"in": "query",
						"default": 30
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/app.DemoSummary"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-dashboard/api/demo/clear": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Seller Dashboard"
				],
				"summary": "Clear all events",
				"parameters": [],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/overview": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Buyer overview",
				"parameters": [
					{
						"type": "string",
						"description": "Buyer (defaults to the configured buyer)",
						"name": "buyerId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dashboard.OverviewView"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/services/top": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Top services",
				"parameters": [
					{
						"type": "string",
						"description": "Buyer (defaults to the configured buyer)",
						"name": "buyerId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Maximum services",
						"name": "limit",
						"in": "query",
						"default": 10
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dashboard.ServiceView"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/categories": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Spend by category",
				"parameters": [
					{
						"type": "string",
						"description": "Buyer (defaults to the configured buyer)",
						"name": "buyerId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/dashboard.GroupView"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/daily": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Daily spend",
				"parameters": [
					{
						"type": "string",
						"description": "Buyer (defaults to the configured buyer)",
						"name": "buyerId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status filter",
						"name": "status",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/aggregate.DateBucket"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/transactions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "List transactions",
				"parameters": [
					{
						"type": "string",
						"description": "Buyer (defaults to the configured buyer)",
						"name": "buyerId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Service filter",
						"name": "serviceId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Status filter",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Category filter",
						"name": "category",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range start (RFC3339 or YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Range end (RFC3339 or YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Zero-based page",
						"name": "page",
						"in": "query",
						"default": 0
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "size",
						"in": "query",
						"default": 50
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Log transaction",
				"parameters": [
					{
						"description": "Transaction",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dashboard.SpendingEventRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/spending.Event"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/transactions/recent": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Recent transactions",
				"parameters": [
					{
						"type": "string",
						"description": "Buyer (defaults to the configured buyer)",
						"name": "buyerId",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Maximum transactions",
						"name": "limit",
						"in": "query",
						"default": 10
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/spending.Event"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/transactions/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Get transaction",
				"parameters": [
					{
						"type": "string",
						"description": "Transaction ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/spending.Event"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/demo/generate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Generate demo data",
				"parameters": [
					{
						"type": "integer",
						"description": "Transactions to generate",
						"name": "count",
						"in": "query",
						"default": 100
					},
					{
						"type": "integer",
						"description": "Days to spread over",
						"name": "days",
						"in": "query",
						"default": 30
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/app.DemoSummary"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		},
		"/x402-buyer-dashboard/api/demo/clear": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Buyer Dashboard"
				],
				"summary": "Clear all transactions",
				"parameters": [],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/jsonapi.Document"
						}
					}
				},
				"security": [
					{
						"BasicAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"aggregate.DateBucket": {
			"type": "object",
			"properties": {
				"date": {
					"type": "string",
					"example": "2024-05-15"
				},
				"count": {
					"type": "integer"
				},
				"amountSum": {
					"type": "integer"
				}
			}
		},
		"app.DemoSummary": {
			"type": "object",
			"properties": {
				"generated": {
					"type": "integer",
					"example": 100
				},
				"byStatus": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"amountSum": {
					"type": "integer"
				},
				"from": {
					"type": "string"
				},
				"to": {
					"type": "string"
				}
			}
		},
		"dashboard.GroupView": {
			"type": "object",
			"properties": {
				"key": {
					"type": "string",
					"example": "claude-agent-001"
				},
				"present": {
					"type": "boolean"
				},
				"count": {
					"type": "integer"
				},
				"amountSum": {
					"type": "integer"
				},
				"avgCost": {
					"type": "integer"
				},
				"percentOfTotal": {
					"type": "number"
				}
			}
		},
		"dashboard.ServiceView": {
			"type": "object",
			"properties": {
				"key": {
					"type": "string",
					"example": "claude-agent-001"
				},
				"present": {
					"type": "boolean"
				},
				"count": {
					"type": "integer"
				},
				"amountSum": {
					"type": "integer"
				},
				"avgCost": {
					"type": "integer"
				},
				"percentOfTotal": {
					"type": "number"
				},
				"serviceName": {
					"type": "string"
				},
				"category": {
					"type": "string",
					"enum": [
						"AI_LANGUAGE_MODEL",
						"AI_IMAGE_GENERATION",
						"AI_VOICE",
						"AI_VIDEO",
						"DATA_API",
						"STORAGE",
						"COMPUTE",
						"ANALYTICS",
						"BLOCKCHAIN",
						"OTHER"
					]
				}
			}
		},
		"dashboard.OverviewView": {
			"type": "object",
			"properties": {
				"count": {
					"type": "integer",
					"example": 12
				},
				"successCount": {
					"type": "integer",
					"example": 10
				},
				"amountSum": {
					"type": "integer",
					"example": 5500
				},
				"successRate": {
					"type": "number",
					"example": 83.33
				},
				"avgCost": {
					"type": "integer",
					"example": 550
				},
				"from": {
					"type": "string"
				},
				"to": {
					"type": "string"
				}
			}
		},
		"dashboard.UsageEventRequest": {
			"type": "object",
			"properties": {
				"tenantId": {
					"type": "string"
				},
				"agentId": {
					"type": "string",
					"example": "claude-agent-001"
				},
				"agentType": {
					"type": "string",
					"enum": [
						"CLAUDE",
						"GPT",
						"GEMINI",
						"CUSTOM",
						"UNKNOWN"
					]
				},
				"method": {
					"type": "string"
				},
				"endpoint": {
					"type": "string",
					"example": "/api/v1/chat"
				},
				"billingKey": {
					"type": "string"
				},
				"network": {
					"type": "string",
					"example": "eip155:84532"
				},
				"asset": {
					"type": "string"
				},
				"amountAtomic": {
					"type": "integer",
					"example": 1500
				},
				"txHash": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"example": "SUCCESS"
				},
				"createdAt": {
					"type": "string"
				},
				"requestedAt": {
					"type": "string"
				},
				"settledAt": {
					"type": "string"
				},
				"latencyMs": {
					"type": "integer"
				},
				"clientIp": {
					"type": "string"
				},
				"userAgent": {
					"type": "string"
				},
				"errorMessage": {
					"type": "string"
				},
				"metadata": {
					"type": "string"
				}
			}
		},
		"dashboard.SpendingEventRequest": {
			"type": "object",
			"properties": {
				"buyerId": {
					"type": "string",
					"example": "buyer-main"
				},
				"buyerName": {
					"type": "string"
				},
				"serviceId": {
					"type": "string",
					"example": "openai-gpt4"
				},
				"serviceName": {
					"type": "string"
				},
				"serviceUrl": {
					"type": "string"
				},
				"endpoint": {
					"type": "string"
				},
				"method": {
					"type": "string"
				},
				"category": {
					"type": "string",
					"enum": [
						"AI_LANGUAGE_MODEL",
						"AI_IMAGE_GENERATION",
						"AI_VOICE",
						"AI_VIDEO",
						"DATA_API",
						"STORAGE",
						"COMPUTE",
						"ANALYTICS",
						"BLOCKCHAIN",
						"OTHER"
					]
				},
				"network": {
					"type": "string"
				},
				"asset": {
					"type": "string"
				},
				"amountAtomic": {
					"type": "integer",
					"example": 50000
				},
				"txHash": {
					"type": "string"
				},
				"paymentId": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"example": "SUCCESS"
				},
				"budgetId": {
					"type": "string"
				},
				"projectId": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"requestedAt": {
					"type": "string"
				},
				"settledAt": {
					"type": "string"
				},
				"latencyMs": {
					"type": "integer"
				},
				"clientIp": {
					"type": "string"
				},
				"userAgent": {
					"type": "string"
				},
				"errorMessage": {
					"type": "string"
				},
				"metadata": {
					"type": "string"
				}
			}
		},
		"usage.Event": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"example": "u-01HX"
				},
				"tenantId": {
					"type": "string"
				},
				"agentId": {
					"type": "string",
					"example": "claude-agent-001"
				},
				"agentType": {
					"type": "string",
					"enum": [
						"CLAUDE",
						"GPT",
						"GEMINI",
						"CUSTOM",
						"UNKNOWN"
					]
				},
				"method": {
					"type": "string"
				},
				"endpoint": {
					"type": "string",
					"example": "/api/v1/chat"
				},
				"billingKey": {
					"type": "string"
				},
				"network": {
					"type": "string",
					"example": "eip155:84532"
				},
				"asset": {
					"type": "string"
				},
				"amountAtomic": {
					"type": "integer",
					"example": 1500
				},
				"txHash": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"SUCCESS",
						"PAYMENT_REQUIRED",
						"VERIFY_FAILED",
						"SETTLE_FAILED",
						"UNKNOWN_ERROR"
					]
				},
				"createdAt": {
					"type": "string"
				},
				"requestedAt": {
					"type": "string"
				},
				"settledAt": {
					"type": "string"
				},
				"latencyMs": {
					"type": "integer"
				},
				"clientIp": {
					"type": "string"
				},
				"userAgent": {
					"type": "string"
				},
				"errorMessage": {
					"type": "string"
				},
				"metadata": {
					"type": "string"
				}
			}
		},
		"spending.Event": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"buyerId": {
					"type": "string",
					"example": "buyer-main"
				},
				"buyerName": {
					"type": "string"
				},
				"serviceId": {
					"type": "string",
					"example": "openai-gpt4"
				},
				"serviceName": {
					"type": "string"
				},
				"serviceUrl": {
					"type": "string"
				},
				"endpoint": {
					"type": "string"
				},
				"method": {
					"type": "string"
				},
				"category": {
					"type": "string",
					"enum": [
						"AI_LANGUAGE_MODEL",
						"AI_IMAGE_GENERATION",
						"AI_VOICE",
						"AI_VIDEO",
						"DATA_API",
						"STORAGE",
						"COMPUTE",
						"ANALYTICS",
						"BLOCKCHAIN",
						"OTHER"
					]
				},
				"network": {
					"type": "string"
				},
				"asset": {
					"type": "string"
				},
				"amountAtomic": {
					"type": "integer",
					"example": 50000
				},
				"txHash": {
					"type": "string"
				},
				"paymentId": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"SUCCESS",
						"PENDING",
						"FAILED",
						"REJECTED",
						"REFUNDED",
						"PAYMENT_REQUIRED"
					]
				},
				"budgetId": {
					"type": "string"
				},
				"projectId": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"requestedAt": {
					"type": "string"
				},
				"settledAt": {
					"type": "string"
				},
				"latencyMs": {
					"type": "integer"
				},
				"clientIp": {
					"type": "string"
				},
				"userAgent": {
					"type": "string"
				},
				"errorMessage": {
					"type": "string"
				},
				"metadata": {
					"type": "string"
				}
			}
		},
		"http.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"example": "ok"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"http.VersionResponse": {
			"type": "object",
			"properties": {
				"version": {
					"type": "string",
					"example": "1.0.0"
				},
				"service": {
					"type": "string",
					"example": "x402dash"
				}
			}
		},
		"jsonapi.Document": {
			"type": "object",
			"properties": {
				"data": {},
				"errors": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/jsonapi.Error"
					}
				},
				"meta": {
					"type": "object",
					"additionalProperties": true
				},
				"links": {
					"$ref": "#/definitions/jsonapi.Links"
				}
			}
		},
		"jsonapi.Error": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"example": "400"
				},
				"code": {
					"type": "string",
					"example": "invalid_parameter"
				},
				"title": {
					"type": "string"
				},
				"detail": {
					"type": "string"
				},
				"source": {
					"$ref": "#/definitions/jsonapi.ErrorSource"
				}
			}
		},
		"jsonapi.ErrorSource": {
			"type": "object",
			"properties": {
				"pointer": {
					"type": "string"
				},
				"parameter": {
					"type": "string",
					"example": "limit"
				},
				"header": {
					"type": "string"
				}
			}
		},
		"jsonapi.Links": {
			"type": "object",
			"properties": {
				"self": {
					"type": "string"
				},
				"first": {
					"type": "string"
				},
				"last": {
					"type": "string"
				},
				"prev": {
					"type": "string"
				},
				"next": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"BasicAuth": {
			"type": "basic"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "x402dash API",
	Description:      "Usage and spending ledger for x402 payments with seller and buyer dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
