package mocks

import (
	"fmt"

	"github.com/user/reportsnap/pkg/ports"
)

// TemplateStore is a mock implementation of ports.TemplateStore backed
// by an in-memory map.
type TemplateStore struct {
	Templates map[string]string

	ListFunc   func() ([]string, error)
	LoadFunc   func(name string) (string, error)
	SaveFunc   func(name, content string) error
	DeleteFunc func(name string) error
}

func (m *TemplateStore) List() ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	names := make([]string, 0, len(m.Templates))
	for name := range m.Templates {
		names = append(names, name)
	}
	return names, nil
}

func (m *TemplateStore) Load(name string) (string, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(name)
	}
	content, ok := m.Templates[name]
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}
	return content, nil
}

func (m *TemplateStore) Save(name, content string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(name, content)
	}
	if m.Templates == nil {
		m.Templates = make(map[string]string)
	}
	m.Templates[name] = content
	return nil
}

func (m *TemplateStore) Delete(name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(name)
	}
	delete(m.Templates, name)
	return nil
}

// Ensure TemplateStore implements ports.TemplateStore
var _ ports.TemplateStore = (*TemplateStore)(nil)
