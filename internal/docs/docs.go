// Package docs registers the OpenAPI description of the journal API with swag.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
package docs

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
        "/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Issue token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.TokenRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TokenResponse"}},
                    "401": {"description": "Invalid passphrase", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Authentication is disabled", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/trades": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "List trades",
                "parameters": [
                    {"type": "string", "name": "ticker", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "strategy", "in": "query"},
                    {"type": "string", "name": "cycle_id", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Create trade",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.TradeRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            }
        },
        "/trades/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Get trade",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Trade not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Update trade",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.TradeRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Trade not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Delete trade",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/trades/{id}/close": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Quick close",
                "description": "Closes an open put, covered call or LEAPS today at the given price. Other trades are rejected with INVALID_INPUT.",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.QuickCloseRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "404": {"description": "Trade not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            }
        },
        "/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Dashboard", "responses": {"200": {"description": "OK"}}}},
        "/cycles": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Wheel cycles", "parameters": [{"type": "string", "name": "cycle_id", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Cycle not found"}}}},
        "/cycles/options": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Cycle options", "parameters": [{"type": "string", "name": "ticker", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/performance/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Performance summary",
                "parameters": [
                    {"type": "string", "name": "range", "in": "query"},
                    {"type": "integer", "name": "months", "in": "query"},
                    {"type": "string", "name": "start", "in": "query"},
                    {"type": "string", "name": "end", "in": "query"},
                    {"type": "string", "name": "ticker", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid input"}}
            }
        },
        "/performance/calendar": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Performance calendar", "parameters": [{"type": "integer", "name": "year", "in": "query"}, {"type": "integer", "name": "month", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/snapshots": {"get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Get performance snapshots", "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/settings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Get settings", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Update settings", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}}}
        },
        "/settings/prices/{ticker}": {"put": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Set ticker price", "parameters": [{"type": "string", "name": "ticker", "in": "path", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}}}},
        "/settings/vix": {"put": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Set manual VIX", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}}}},
        "/market/refresh": {"post": {"security": [{"BearerAuth": []}], "tags": ["market"], "summary": "Refresh market data", "responses": {"200": {"description": "OK"}, "502": {"description": "Market data unavailable"}}}},
        "/backup/export": {"get": {"security": [{"BearerAuth": []}], "tags": ["backup"], "summary": "Export journal", "responses": {"200": {"description": "OK"}}}},
        "/backup/import": {"post": {"security": [{"BearerAuth": []}], "tags": ["backup"], "summary": "Import journal", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid import"}}}}
    },
    "definitions": {
        "handlers.ErrorDetail": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}},
        "handlers.TokenRequest": {"type": "object", "required": ["passphrase"], "properties": {"passphrase": {"type": "string"}}},
        "handlers.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}, "expires_at": {"type": "string"}}},
        "handlers.QuickCloseRequest": {"type": "object", "required": ["close_price"], "properties": {"close_price": {"type": "number"}, "exit_fee": {"type": "number"}}},
        "handlers.TradeRequest": {
            "type": "object",
            "required": ["strategy", "ticker"],
            "properties": {
                "ticker": {"type": "string"},
                "strategy": {"type": "string"},
                "status": {"type": "string"},
                "entryDate": {"type": "string"},
                "expirationDate": {"type": "string"},
                "closeDate": {"type": "string"},
                "strikePrice": {"type": "number"},
                "premium": {"type": "number"},
                "contracts": {"type": "number"},
                "underlyingPrice": {"type": "number"},
                "fees": {"type": "number"},
                "closePrice": {"type": "number"},
                "pnl": {"type": "number"},
                "notes": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "cycleId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Wheeltradr API",
	Description:      "A personal journal for the options wheel: trades, realized P&L, cycles and exposure.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
