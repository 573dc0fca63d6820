package ast

// FileKind tags a typed file with its declared purpose. The set is closed;
// kinds contributed by plugins fall under FileKindOther.
type FileKind string

const (
	FileKindContract   FileKind = "contract"
	FileKindDatasource FileKind = "datasource"
	FileKindOther      FileKind = "other"
)

// File is the strongly-typed wrapper over one parsed document. Root is always
// a Mapping; documents whose top level is a sequence or scalar are rejected
// before a File is constructed. Content retains the raw pre-substitution text
// for reporting.
type File struct {
	Path     string
	Content  string
	Root     *Mapping
	FileKind FileKind

	// Extensions holds opaque structures attached by parser plugins, keyed
	// by plugin name. Append-only; plugins must not mutate Root.
	Extensions map[string]interface{}
}

// NewFile constructs a typed file over a validated root mapping.
func NewFile(kind FileKind, path, content string, root *Mapping) *File {
	return &File{
		Path:     path,
		Content:  content,
		Root:     root,
		FileKind: kind,
	}
}

// Kind returns the file's variant tag.
func (f *File) Kind() FileKind { return f.FileKind }

// IsContract returns true for data-contract files.
func (f *File) IsContract() bool { return f.FileKind == FileKindContract }

// IsDatasource returns true for datasource declaration files.
func (f *File) IsDatasource() bool { return f.FileKind == FileKindDatasource }

// Datasource returns the contract's datasource reference as a located string.
// ok is false when the file is not a contract, the field is absent, or the
// field is not a plain string.
func (f *File) Datasource() (*StringValue, bool) {
	if f.FileKind != FileKindContract {
		return nil, false
	}
	return f.Root.GetString("datasource")
}

// Name returns the datasource's declared name as a located string. ok is
// false when the file is not a datasource declaration, the field is absent,
// or the field is not a plain string.
func (f *File) Name() (*StringValue, bool) {
	if f.FileKind != FileKindDatasource {
		return nil, false
	}
	return f.Root.GetString("name")
}

// Attach stores a plugin-contributed extension under the given plugin name.
func (f *File) Attach(plugin string, ext interface{}) {
	if f.Extensions == nil {
		f.Extensions = make(map[string]interface{})
	}
	f.Extensions[plugin] = ext
}

// Extension returns the extension attached by the named plugin, if any.
func (f *File) Extension(plugin string) (interface{}, bool) {
	ext, ok := f.Extensions[plugin]
	return ext, ok
}
