package web

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/reportsnap/pkg/convert"
	"github.com/user/reportsnap/pkg/render"
	"github.com/user/reportsnap/pkg/report"
)

const maxUploadSize = 10 << 20 // 10MB

// ConversionRequest is the JSON body of POST /api/convert.
type ConversionRequest struct {
	HTMLContent  string         `json:"html_content"`
	HTMLFilePath string         `json:"html_file_path"`
	PNGFilePath  string         `json:"png_file_path"`
	Options      *RenderOptions `json:"options"`
}

// RenderOptions is the wire form of render.Options.
type RenderOptions struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale_factor"`
	TimeoutMs  int     `json:"timeout_ms"`
	WaitTimeMs int     `json:"wait_time_ms"`
	FullPage   *bool   `json:"full_page"`
}

func (o *RenderOptions) toRender() render.Options {
	if o == nil {
		return render.Options{}
	}
	return render.Options{
		ViewportWidth:  o.Width,
		ViewportHeight: o.Height,
		ScaleFactor:    o.Scale,
		TimeoutMs:      o.TimeoutMs,
		WaitTimeMs:     o.WaitTimeMs,
		FullPage:       o.FullPage,
	}
}

// ConversionResponse is the JSON body returned by the conversion
// endpoints.
type ConversionResponse struct {
	Success   bool             `json:"success"`
	ImagePath string           `json:"image_path,omitempty"`
	Error     string           `json:"error,omitempty"`
	Attempts  []render.Attempt `json:"attempts,omitempty"`
}

// ReportRequest is the JSON body of POST /api/report.
type ReportRequest struct {
	ChatContent  string `json:"chat_content" binding:"required"`
	TemplateName string `json:"template_name"`
	Model        string `json:"model"`
}

// ReportResponse is the JSON body of POST /api/report.
type ReportResponse struct {
	Success     bool   `json:"success"`
	HTMLPath    string `json:"html_path,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
	HTMLContent string `json:"html_content,omitempty"` // Raw response when extraction misses
	Message     string `json:"message,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": ServiceName,
		"version": s.version,
	})
}

func (s *Server) handleConvert(c *gin.Context) {
	var req ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ConversionResponse{Error: err.Error()})
		return
	}
	if req.HTMLContent == "" && req.HTMLFilePath == "" {
		c.JSON(http.StatusBadRequest, ConversionResponse{
			Error: "either html_content or html_file_path is required",
		})
		return
	}

	result := s.converter.Convert(c.Request.Context(), convert.Request{
		Content:  req.HTMLContent,
		HTMLPath: req.HTMLFilePath,
		PNGPath:  req.PNGFilePath,
		Options:  req.Options.toRender(),
	})
	s.writeConversion(c, result)
}

// handleConvertFile accepts a multipart HTML upload under the
// html_file field.
func (s *Server) handleConvertFile(c *gin.Context) {
	file, err := c.FormFile("html_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ConversionResponse{Error: "html_file upload is required"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, ConversionResponse{Error: "uploaded file too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ConversionResponse{Error: err.Error()})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ConversionResponse{Error: err.Error()})
		return
	}

	result := s.converter.Convert(c.Request.Context(), convert.Request{
		Content:   string(content),
		ImageName: c.PostForm("image_name"),
	})
	s.writeConversion(c, result)
}

func (s *Server) writeConversion(c *gin.Context, result render.Result) {
	if result.Success {
		c.JSON(http.StatusOK, ConversionResponse{
			Success:   true,
			ImagePath: result.OutputPath,
			Attempts:  result.Attempts,
		})
		return
	}
	s.logger.Error("conversion failed: %s", result.Message)
	c.JSON(http.StatusInternalServerError, ConversionResponse{
		Error:    result.Message,
		Attempts: result.Attempts,
	})
}

func (s *Server) handleReport(c *gin.Context) {
	if s.pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, ReportResponse{
			Message: "report generation is not configured on this instance",
		})
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ReportResponse{Message: err.Error()})
		return
	}

	outcome, err := s.pipeline.Generate(c.Request.Context(), req.ChatContent, report.Options{
		TemplateName: req.TemplateName,
		Model:        req.Model,
	})
	if err != nil {
		s.logger.Error("report generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, ReportResponse{Message: err.Error()})
		return
	}

	resp := ReportResponse{
		Success:   outcome.Success,
		HTMLPath:  outcome.HTMLPath,
		ImagePath: outcome.PNGPath,
		Message:   outcome.Message,
	}
	if !outcome.Success && outcome.HTMLPath == "" {
		// Extraction miss: hand the raw text back so the caller can
		// inspect what the model said.
		resp.HTMLContent = outcome.RawResponse
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListTemplates(c *gin.Context) {
	names, err := s.templates.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) handleGetTemplate(c *gin.Context) {
	content, err := s.templates.Load(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": c.Param("name"), "content": content})
}

func (s *Server) handlePutTemplate(c *gin.Context) {
	var body struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.templates.Save(c.Param("name"), body.Content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": c.Param("name")})
}

func (s *Server) handleDeleteTemplate(c *gin.Context) {
	if err := s.templates.Delete(c.Param("name")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
