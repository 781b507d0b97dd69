package ports

// TemplateStore abstracts named prompt template storage.
type TemplateStore interface {
	// List returns the names of all available templates.
	List() ([]string, error)

	// Load returns the content of the named template.
	Load(name string) (string, error)

	// Save writes template content under the given name.
	Save(name, content string) error

	// Delete removes the named template.
	Delete(name string) error
}
