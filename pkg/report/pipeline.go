// Package report generates daily chat reports: it prompts a chat
// model with a transcript, recovers the HTML document from the
// response and rasterizes it to a PNG image.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/user/reportsnap/pkg/adapters/templatestore"
	"github.com/user/reportsnap/pkg/convert"
	"github.com/user/reportsnap/pkg/extract"
	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/render"
)

const (
	userPromptPrefix   = "请根据以下聊天记录生成群日报：\n"
	defaultTemperature = 0.7
	defaultMaxTokens   = 100000
)

// Options tune one report generation run.
type Options struct {
	// TemplateName selects the system prompt template. Empty selects
	// the default template.
	TemplateName string

	// Model overrides the chat client's configured model.
	Model string

	// Temperature and MaxTokens override the sampling defaults when
	// non-zero.
	Temperature float64
	MaxTokens   int

	// OnDelta, when set, switches to streaming completion and receives
	// each content fragment as it arrives.
	OnDelta func(delta string)

	// Render tunes the screenshot of the generated report.
	Render render.Options
}

// Outcome is the result of one report run. Success means the PNG was
// produced; a run that yields HTML but no image reports the paths it
// did produce alongside Success=false.
type Outcome struct {
	Success     bool          `json:"success"`
	HTMLPath    string        `json:"html_path,omitempty"`
	PNGPath     string        `json:"png_path,omitempty"`
	RawResponse string        `json:"-"`
	Message     string        `json:"message,omitempty"`
	Render      render.Result `json:"render"`
}

// Pipeline wires the chat client, HTML extraction and image
// conversion into the report flow.
type Pipeline struct {
	templates ports.TemplateStore
	chat      ports.ChatClient
	converter *convert.Converter
	fs        ports.FileSystem
	sink      ports.DebugSink
	logger    ports.Logger
	outputDir string
}

// NewPipeline assembles a Pipeline. Report files are written to
// outputDir, which defaults to "output".
func NewPipeline(templates ports.TemplateStore, chat ports.ChatClient, converter *convert.Converter, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger, outputDir string) *Pipeline {
	if outputDir == "" {
		outputDir = "output"
	}
	return &Pipeline{
		templates: templates,
		chat:      chat,
		converter: converter,
		fs:        fs,
		sink:      sink,
		logger:    logger,
		outputDir: outputDir,
	}
}

// Generate runs the full report flow for one transcript.
func (p *Pipeline) Generate(ctx context.Context, transcript string, opts Options) (Outcome, error) {
	if transcript == "" {
		return Outcome{}, fmt.Errorf("%w: transcript is empty", render.ErrInvalidArgument)
	}

	templateName := opts.TemplateName
	if templateName == "" {
		templateName = templatestore.DefaultName
	}
	systemPrompt, err := p.templates.Load(templateName)
	if err != nil {
		return Outcome{}, fmt.Errorf("load template: %w", err)
	}

	req := ports.ChatRequest{
		Messages: []ports.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPromptPrefix + transcript},
		},
		Model:       opts.Model,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	if opts.Temperature != 0 {
		req.Temperature = opts.Temperature
	}
	if opts.MaxTokens != 0 {
		req.MaxTokens = opts.MaxTokens
	}

	p.logger.Info("requesting report from model")
	var response string
	if opts.OnDelta != nil {
		response, err = p.chat.CompleteStream(ctx, req, opts.OnDelta)
	} else {
		response, err = p.chat.Complete(ctx, req)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("chat completion: %w", err)
	}

	if p.sink.Enabled() {
		if err := p.sink.SaveRawResponse([]byte(response)); err != nil {
			p.logger.Warn("failed to save raw response: %v", err)
		}
	}

	html, ok := extract.Extract(response)
	if !ok {
		p.logger.Warn("no HTML document found in model response")
		return Outcome{
			RawResponse: response,
			Message:     "no HTML content found in model response",
		}, nil
	}
	if p.sink.Enabled() {
		if err := p.sink.SaveExtractedHTML([]byte(html)); err != nil {
			p.logger.Warn("failed to save extracted HTML: %v", err)
		}
	}

	if err := p.fs.MkdirAll(p.outputDir); err != nil {
		return Outcome{}, fmt.Errorf("create output directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	htmlPath := filepath.Join(p.outputDir, fmt.Sprintf("report_%s.html", timestamp))
	pngPath := filepath.Join(p.outputDir, fmt.Sprintf("report_%s.png", timestamp))

	if err := p.fs.WriteFile(htmlPath, []byte(html)); err != nil {
		return Outcome{}, fmt.Errorf("save report HTML: %w", err)
	}
	p.logger.Info("report HTML saved to %s", htmlPath)

	result := p.converter.Convert(ctx, convert.Request{
		HTMLPath: htmlPath,
		PNGPath:  pngPath,
		Options:  opts.Render,
	})
	if p.sink.Enabled() {
		if data, err := json.Marshal(result.Attempts); err == nil {
			if err := p.sink.SaveAttemptsJSON(data); err != nil {
				p.logger.Warn("failed to save attempt log: %v", err)
			}
		}
	}

	outcome := Outcome{
		Success:     result.Success,
		HTMLPath:    htmlPath,
		RawResponse: response,
		Render:      result,
	}
	if result.Success {
		outcome.PNGPath = result.OutputPath
		p.logger.Info("report image saved to %s", result.OutputPath)
	} else {
		outcome.Message = result.Message
	}
	return outcome, nil
}
