package handler

import (
	"github.com/gin-gonic/gin"

	"readiness/internal/analyzer"
	"readiness/internal/schema"
)

// SchemaHandler serves the target schema.
type SchemaHandler struct {
	body SchemaResponse
}

// NewSchemaHandler creates a new SchemaHandler. The response is built once.
func NewSchemaHandler(s *schema.Schema) *SchemaHandler {
	fields := make([]SchemaField, 0, s.Len())
	for _, f := range s.Fields() {
		fields = append(fields, SchemaField{Path: f.Path, Enum: f.Enum, Line: f.IsLineField()})
	}
	return &SchemaHandler{body: SchemaResponse{
		Name:    s.Name(),
		Version: s.Version(),
		Fields:  fields,
		Rules:   analyzer.RuleNames(),
	}}
}

// Get handles GET /api/v1/schema
// @Summary Get the target schema
// @Description Field paths in schema order, allowed value sets, and the rules every report runs
// @Tags schema
// @Produce json
// @Success 200 {object} Response{data=SchemaResponse} "Schema"
// @Router /schema [get]
func (h *SchemaHandler) Get(c *gin.Context) {
	RespondOK(c, h.body)
}
