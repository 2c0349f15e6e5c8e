// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/service/main.go -o docs
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
        "/api/v1/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register an account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CredentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/signin": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/signout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "security": [{"SessionToken": []}],
                "tags": ["auth"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/catalog": {
            "get": {
                "tags": ["catalog"],
                "summary": "Full catalog",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CatalogResponse"}}}
            }
        },
        "/api/v1/catalog/age-categories": {
            "get": {
                "tags": ["catalog"],
                "summary": "Age categories and base prices",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AgeCategoryResponse"}}}}
            }
        },
        "/api/v1/catalog/service-types": {
            "get": {
                "tags": ["catalog"],
                "summary": "Sale or rental options",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ServiceTypeResponse"}}}}
            }
        },
        "/api/v1/catalog/{category}": {
            "get": {
                "tags": ["catalog"],
                "summary": "Items of a category",
                "parameters": [{"type": "string", "description": "Category code (finishing, fabric)", "name": "category", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CatalogItemResponse"}}}}
            }
        },
        "/api/v1/quotes": {
            "get": {
                "security": [{"SessionToken": []}],
                "tags": ["quotes"],
                "summary": "List quotes",
                "parameters": [
                    {"type": "string", "description": "Cursor from a previous page", "name": "cursor", "in": "query"},
                    {"type": "integer", "description": "Page size (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "tags": ["quotes"],
                "summary": "Submit a quote",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitQuoteRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SubmitQuoteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/quotes/preview": {
            "post": {
                "security": [{"SessionToken": []}],
                "tags": ["quotes"],
                "summary": "Price a selection",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PreviewRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PreviewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/quotes/{id}": {
            "get": {
                "security": [{"SessionToken": []}],
                "tags": ["quotes"],
                "summary": "Get a quote with its items",
                "parameters": [{"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuoteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/quote-drafts": {
            "post": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Open an empty draft",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.DraftResponse"}}}
            }
        },
        "/api/v1/quote-drafts/{id}": {
            "get": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Get a draft with its totals",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DraftResponse"}}}
            },
            "delete": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Discard a draft",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/quote-drafts/{id}/age-category": {
            "put": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Choose the age category",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetAgeCategoryRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DraftResponse"}}}
            }
        },
        "/api/v1/quote-drafts/{id}/items": {
            "post": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Add a catalog item",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddItemRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AddItemResponse"}}}
            }
        },
        "/api/v1/quote-drafts/{id}/items/{lineId}": {
            "patch": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Change a line's quantity",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "lineId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetQuantityRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DraftResponse"}}}
            },
            "delete": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Remove a line",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "lineId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DraftResponse"}}}
            }
        },
        "/api/v1/quote-drafts/{id}/submit": {
            "post": {
                "security": [{"SessionToken": []}],
                "tags": ["drafts"],
                "summary": "Submit a draft as a quote",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitDraftRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SubmitQuoteResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/dashboard/home": {
            "get": {
                "security": [{"SessionToken": []}],
                "tags": ["dashboard"],
                "summary": "Recent orders and quick stats",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HomeResponse"}}}
            }
        },
        "/api/v1/dashboard/summary": {
            "get": {
                "security": [{"SessionToken": []}],
                "tags": ["dashboard"],
                "summary": "Recent quotes and today's agenda",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardResponse"}}}
            }
        },
        "/api/v1/tables/{tableId}/rows": {
            "get": {
                "security": [{"SessionToken": []}],
                "tags": ["tables"],
                "summary": "List table rows",
                "parameters": [{"type": "string", "name": "tableId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RowsResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "tags": ["tables"],
                "summary": "Append a table row",
                "parameters": [
                    {"type": "string", "name": "tableId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"type": "object"}}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                },
                "traceId": {"type": "string"}
            }
        },
        "dto.Money": {
            "type": "object",
            "properties": {"amount": {"type": "string", "example": "230.00"}, "formatted": {"type": "string", "example": "R$ 230,00"}}
        },
        "dto.CredentialsRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8}}
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expiresAt": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}
        },
        "dto.CatalogItemResponse": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "name": {"type": "string"}, "unitPrice": {"$ref": "#/definitions/dto.Money"}}
        },
        "dto.CategoryResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "label": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/dto.CatalogItemResponse"}}}
        },
        "dto.AgeCategoryResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "label": {"type": "string"}, "basePrice": {"$ref": "#/definitions/dto.Money"}}
        },
        "dto.ServiceTypeResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "label": {"type": "string"}}
        },
        "dto.CatalogResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryResponse"}},
                "ageCategories": {"type": "array", "items": {"$ref": "#/definitions/dto.AgeCategoryResponse"}}
            }
        },
        "dto.ClientRequest": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}}
        },
        "dto.LineRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unitPrice": {"type": "string"},
                "total": {"type": "string"}
            }
        },
        "dto.SubmitQuoteRequest": {
            "type": "object",
            "required": ["client", "ageCategory", "serviceType", "totalValue"],
            "properties": {
                "client": {"$ref": "#/definitions/dto.ClientRequest"},
                "ageCategory": {"type": "string"},
                "serviceType": {"type": "string", "enum": ["venda", "aluguel"]},
                "description": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.LineRequest"}},
                "totalValue": {"type": "string"}
            }
        },
        "dto.SubmitQuoteResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "quoteId": {"type": "string"},
                "total": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.QuoteResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "clientId": {"type": "string"},
                "clientName": {"type": "string"},
                "clientEmail": {"type": "string"},
                "status": {"type": "string"},
                "totalValue": {"$ref": "#/definitions/dto.Money"},
                "description": {"type": "string"},
                "serviceType": {"type": "string"},
                "ageCategory": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.PreviewRequest": {
            "type": "object",
            "properties": {
                "ageCategory": {"type": "string"},
                "items": {"type": "array", "items": {"type": "object", "properties": {"category": {"type": "string"}, "name": {"type": "string"}, "quantity": {"type": "integer"}}}}
            }
        },
        "dto.QuoteLineResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "category": {"type": "string"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unitPrice": {"$ref": "#/definitions/dto.Money"},
                "total": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.BreakdownResponse": {
            "type": "object",
            "properties": {
                "basePrice": {"$ref": "#/definitions/dto.Money"},
                "itemsTotal": {"$ref": "#/definitions/dto.Money"},
                "subtotal": {"$ref": "#/definitions/dto.Money"},
                "total": {"$ref": "#/definitions/dto.Money"}
            }
        },
        "dto.PreviewResponse": {
            "type": "object",
            "properties": {
                "ageCategory": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.QuoteLineResponse"}},
                "breakdown": {"$ref": "#/definitions/dto.BreakdownResponse"}
            }
        },
        "dto.DraftResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "ageCategory": {"type": "string"},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/dto.QuoteLineResponse"}},
                "breakdown": {"$ref": "#/definitions/dto.BreakdownResponse"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.SetAgeCategoryRequest": {"type": "object", "properties": {"ageCategory": {"type": "string"}}},
        "dto.AddItemRequest": {
            "type": "object",
            "required": ["category", "name"],
            "properties": {"category": {"type": "string"}, "name": {"type": "string"}}
        },
        "dto.AddItemResponse": {
            "type": "object",
            "properties": {"line": {"$ref": "#/definitions/dto.QuoteLineResponse"}, "draft": {"$ref": "#/definitions/dto.DraftResponse"}}
        },
        "dto.SetQuantityRequest": {"type": "object", "properties": {"quantity": {"type": "integer"}}},
        "dto.SubmitDraftRequest": {
            "type": "object",
            "required": ["client", "serviceType"],
            "properties": {
                "client": {"$ref": "#/definitions/dto.ClientRequest"},
                "serviceType": {"type": "string", "enum": ["venda", "aluguel"]},
                "description": {"type": "string"}
            }
        },
        "dto.HomeResponse": {
            "type": "object",
            "properties": {
                "recentOrders": {"type": "array", "items": {"type": "object"}},
                "quickStats": {"type": "array", "items": {"type": "object", "properties": {"label": {"type": "string"}, "value": {"type": "string"}, "icon": {"type": "string"}}}}
            }
        },
        "dto.DashboardResponse": {
            "type": "object",
            "properties": {
                "recentQuotes": {"type": "array", "items": {"type": "object"}},
                "agenda": {"type": "array", "items": {"type": "object"}}
            }
        },
        "dto.RowsResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "rows": {"type": "array", "items": {"type": "object"}}}
        }
    },
    "securityDefinitions": {
        "SessionToken": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Atelier Service API",
	Description:      "Quotes, drafts and dashboards for a children's formalwear atelier.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
