package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/instruments": {
            "get": {
                "tags": ["instruments"],
                "summary": "List instruments",
                "description": "Search the static catalog by symbol or name, optionally by type",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "q", "type": "string", "description": "Search text"},
                    {"in": "query", "name": "type", "type": "string", "enum": ["stock", "etf", "crypto", "forex", "index"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Instrument"}}},
                    "400": {"description": "Invalid type", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/instruments/{symbol}": {
            "get": {
                "tags": ["instruments"],
                "summary": "Get instrument by symbol",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "symbol", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Instrument"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/watchlists": {
            "get": {
                "tags": ["watchlists"],
                "summary": "List watchlists",
                "description": "Get every watchlist together with the tab state",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WatchlistsResponse"}}
                }
            },
            "post": {
                "tags": ["watchlists"],
                "summary": "Create a watchlist",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateWatchlistRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Watchlist"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/watchlists/{id}": {
            "get": {
                "tags": ["watchlists"],
                "summary": "Get watchlist by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Watchlist"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "tags": ["watchlists"],
                "summary": "Update or create a watchlist",
                "description": "Replace the instrument list (and optionally the name). Unknown IDs are created.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateWatchlistRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/Watchlist"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Watchlist"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["watchlists"],
                "summary": "Delete a watchlist",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/watchlists/{id}/name": {
            "patch": {
                "tags": ["watchlists"],
                "summary": "Rename a watchlist",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/RenameWatchlistRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Watchlist"}},
                    "400": {"description": "Invalid name", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/tabs": {
            "get": {
                "tags": ["tabs"],
                "summary": "Get tab state",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TabState"}}
                }
            },
            "put": {
                "tags": ["tabs"],
                "summary": "Update tab state",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateTabsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TabState"}},
                    "400": {"description": "Active tab not open", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "Instrument": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "name": {"type": "string"},
                "exchange": {"type": "string"},
                "type": {"type": "string"},
                "currency": {"type": "string"}
            }
        },
        "Watchlist": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "instruments": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "TabState": {
            "type": "object",
            "properties": {
                "activeTab": {"type": "string"},
                "openTabs": {"type": "array", "items": {"type": "string"}},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "WatchlistsResponse": {
            "type": "object",
            "properties": {
                "watchlists": {"type": "array", "items": {"$ref": "#/definitions/Watchlist"}},
                "tabs": {"$ref": "#/definitions/TabState"}
            }
        },
        "CreateWatchlistRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "instruments": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UpdateWatchlistRequest": {
            "type": "object",
            "required": ["instruments"],
            "properties": {
                "name": {"type": "string"},
                "instruments": {"type": "array", "items": {"type": "string"}}
            }
        },
        "RenameWatchlistRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "UpdateTabsRequest": {
            "type": "object",
            "properties": {
                "activeTab": {"type": "string"},
                "openTabs": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Watchdeck API",
	Description:      "Watchlist and tab state persistence",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
