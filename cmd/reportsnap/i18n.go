// Package main provides localization for the reportsnap CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Chinese translations for CLI messages.
	l10n.Register("zh", l10n.LexiconMap{
		// Root command
		"Generate daily chat report images from transcripts": "根据聊天记录生成群日报图片",

		// Global flags
		"Path to YAML configuration file":      "YAML配置文件路径",
		"Log level (debug, info, warn, error)": "日志级别（debug, info, warn, error）",
		"Suppress all log output":              "禁止所有日志输出",

		// Report command
		"Generate a daily report image from a chat transcript file": "根据聊天记录文件生成群日报图片",
		"Prompt template name":                 "提示词模板名称",
		"Model name override":                  "指定模型名称",
		"Print model output as it streams":     "实时打印模型输出",
		"Enable debug output":                  "启用调试输出",
		"Directory for debug output":           "调试输出目录",
		"transcript file argument is required": "必须提供聊天记录文件参数",

		// Convert command
		"Convert an HTML file to a PNG image":  "将HTML文件转换为PNG图片",
		"Output PNG file path":                 "输出PNG文件路径",
		"Viewport width in pixels":             "视口宽度（像素）",
		"Viewport height in pixels":            "视口高度（像素）",
		"Device scale factor":                  "设备缩放比例",
		"Render timeout in milliseconds":       "渲染超时时间（毫秒）",
		"Extra wait after load in milliseconds": "加载后额外等待时间（毫秒）",
		"HTML file argument is required":       "必须提供HTML文件参数",

		// Serve command
		"Run the HTTP report and conversion service": "运行HTTP日报与转换服务",
		"Listen address (host:port)":                 "监听地址（host:port）",

		// Templates command
		"List available prompt templates": "列出可用的提示词模板",

		// Version command
		"Show version information": "显示版本信息",
		"reportsnap version %s":    "reportsnap 版本 %s",

		// Runtime messages
		"Interrupted, shutting down...":            "已中断，正在关闭...",
		"Read transcript %s (%d bytes)":            "成功读取聊天记录 %s（%d 字节）",
		"Report HTML saved to %s":                  "日报HTML已保存到 %s",
		"Report image saved to %s":                 "日报图片已保存到 %s",
		"Image saved to %s":                        "图片已保存到 %s",
		"Delegating rendering to %s":               "渲染已委托给 %s",
		"No API key configured, /api/report is disabled": "未配置API密钥，/api/report 已禁用",
	})
}
