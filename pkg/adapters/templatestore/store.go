// Package templatestore persists named prompt templates as *.txt
// files in a directory.
package templatestore

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/reportsnap/pkg/ports"
)

// DefaultName is the template used when the caller names none.
const DefaultName = "default_template"

const defaultContent = `任务：根据提供的微信群聊天记录（txt格式）生成今日群日报，输出为风格固定、一致的HTML页面，适合截图分享

要求：
1. 分析聊天记录，提取今日的主要话题、讨论内容和重要信息
2. 将内容整理为结构化的日报形式
3. 生成美观、专业的HTML页面，具有良好的视觉层次和排版
4. 页面应包含标题、日期、主要内容摘要、详细讨论等部分
5. 使用适当的字体、颜色和间距，确保可读性
6. 设计应简洁大方，适合在手机上查看
7. 输出完整的HTML代码，可直接用于截图分享

HTML设计风格：
- 使用现代、简洁的设计
- 主色调使用蓝色系(#3498db)，搭配白色背景
- 标题使用22px大小，内容使用16px大小
- 使用卡片式布局，有适当的阴影和圆角
- 包含群名称、日期、主要话题、讨论要点等内容
- 可以添加简单的图标来增强视觉效果

请直接输出完整的HTML代码，不需要解释。
`

// DiskStore implements ports.TemplateStore over a directory of *.txt
// files. Names are stored without the .txt extension.
type DiskStore struct {
	dir    string
	fs     ports.FileSystem
	logger ports.Logger
}

// NewDiskStore creates the store, ensuring the directory exists and
// seeding the default template when the directory holds none.
func NewDiskStore(dir string, fs ports.FileSystem, logger ports.Logger) (*DiskStore, error) {
	s := &DiskStore{dir: dir, fs: fs, logger: logger}
	if err := fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create template directory: %w", err)
	}
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		s.logger.Info("no templates found, creating default template")
		if err := s.Save(DefaultName, defaultContent); err != nil {
			return nil, fmt.Errorf("seed default template: %w", err)
		}
	}
	return s, nil
}

func (s *DiskStore) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

func (s *DiskStore) Load(name string) (string, error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", name, err)
	}
	return string(data), nil
}

func (s *DiskStore) Save(name, content string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("save template %s: %w", name, err)
	}
	return nil
}

func (s *DiskStore) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if exists, err := s.fs.Exists(path); err != nil || !exists {
		return fmt.Errorf("template %s not found", name)
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("delete template %s: %w", name, err)
	}
	return nil
}

// path validates the name and maps it to a file path. Separators and
// parent references are rejected so names cannot escape the directory.
func (s *DiskStore) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("template name is empty")
	}
	name = strings.TrimSuffix(name, ".txt")
	if strings.ContainsAny(name, `/\`) || name == ".." || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	return filepath.Join(s.dir, name+".txt"), nil
}
