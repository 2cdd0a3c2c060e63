// Package api exposes the encoder over HTTP.
package api

import (
	"bytes"
	"errors"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/printforge/barcode-engine/pkg/gs1"
	"github.com/printforge/barcode-engine/pkg/symbol"
)

// Server is the API server
type Server struct {
	router *gin.Engine
}

// NewServer creates a new API server
func NewServer() *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	router.Use(corsMiddleware())

	server := &Server{router: router}
	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/symbologies", s.handleSymbologies)
	s.router.GET("/barcode", s.handleBarcode)

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// handleSymbologies lists the supported symbology tags with their
// capability flags.
func (s *Server) handleSymbologies(c *gin.Context) {
	types := symbol.Types()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	out := make([]gin.H, 0, len(types))
	for _, t := range types {
		b, err := symbol.New(t)
		if err != nil {
			continue
		}
		out = append(out, gin.H{
			"type":              string(t),
			"name":              b.Name(),
			"ratio":             b.Supports(symbol.CapRatio),
			"add_on":            b.Supports(symbol.CapAddOn),
			"optional_checksum": b.Supports(symbol.CapOptionalChecksum),
			"auto_complete":     b.Supports(symbol.CapAutoComplete),
			"text_on_top":       b.Supports(symbol.CapTextOnTop),
		})
	}

	c.JSON(200, gin.H{"symbologies": out})
}

// handleBarcode encodes one barcode and streams the file back.
func (s *Server) handleBarcode(c *gin.Context) {
	content := c.Query("content")
	if content == "" {
		c.JSON(400, gin.H{"error": "content is required"})
		return
	}
	typ := c.Query("type")
	if typ == "" {
		c.JSON(400, gin.H{"error": "type is required"})
		return
	}

	transform, err := ParseTransform(c.Query("transform"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	req := Request{
		Type:               symbol.Type(typ),
		Content:            content,
		Format:             c.DefaultQuery("fmt", "png"),
		WidthMM:            queryFloat(c, "width"),
		HeightMM:           queryFloat(c, "height"),
		AutoComplete:       queryBool(c, "auto_complete"),
		WithChecksum:       queryBool(c, "checksum"),
		ShowChecksum:       queryBool(c, "show_checksum"),
		ShowText:           c.DefaultQuery("text", "1") == "1",
		TextOnTop:          queryBool(c, "text_on_top"),
		CustomText:         c.Query("custom_text"),
		AddOn:              c.Query("add_on"),
		Ratio:              queryFloat(c, "ratio"),
		FontSize:           queryFloat(c, "font_size"),
		ModuleWidth:        queryFloat(c, "module_width"),
		DotSize:            queryFloat(c, "dot_size"),
		BarWidthCorrection: queryFloat(c, "bar_correction"),
		DPIX:               queryFloat(c, "dpi"),
		DPIY:               queryFloat(c, "dpi_y"),
		CMYK:               queryBool(c, "cmyk"),
		Transform:          transform,
	}

	var buf bytes.Buffer
	if err := Encode(&buf, req); err != nil {
		status, body := errorBody(err)
		c.JSON(status, body)
		return
	}

	c.Data(200, req.ContentType(), buf.Bytes())
}

// errorBody maps a validation failure to a JSON payload carrying its
// machine-readable kind.
func errorBody(err error) (int, gin.H) {
	var symErr *symbol.Error
	if errors.As(err, &symErr) {
		return 422, gin.H{
			"error":    symErr.Error(),
			"kind":     int(symErr.Kind),
			"category": symErr.Category(),
		}
	}
	var gs1Err *gs1.Error
	if errors.As(err, &gs1Err) {
		return 422, gin.H{
			"error": gs1Err.Error(),
			"kind":  int(gs1Err.Kind),
			"ai":    gs1Err.AI,
		}
	}
	return 400, gin.H{"error": err.Error()}
}

func queryFloat(c *gin.Context, key string) float64 {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func queryBool(c *gin.Context, key string) bool {
	v := c.Query(key)
	return v == "1" || v == "true"
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests and custom server setups.
func (s *Server) Handler() *gin.Engine { return s.router }

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
