package mention

import (
	"context"
	"net/url"
	"path/filepath"
)

// Kind tags the variant carried by an Option.
type Kind int

const (
	KindCategory Kind = iota
	KindDynamicCategory
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindDynamicCategory:
		return "dynamic"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// LeafKind identifies the resource type behind a leaf option.
type LeafKind string

const (
	LeafFile   LeafKind = "File"
	LeafFolder LeafKind = "Folder"
)

// Reference is an opaque handle to a workspace resource.
type Reference struct {
	Path string
}

// URI renders the reference as a file URI.
func (r Reference) URI() string {
	if r.Path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(r.Path)}
	return u.String()
}

// Generator produces the children of a dynamic category for a query.
type Generator func(ctx context.Context, query string) ([]Option, error)

// Option is a node in the mention tree. Exactly one of the static children,
// the generator, or the leaf payload is set; use the constructors.
type Option struct {
	FullName        string
	AbbreviatedName string

	kind     Kind
	next     []Option
	generate Generator
	leafKind LeafKind
	ref      Reference
}

// NewCategory builds a category with static children.
func NewCategory(fullName, abbreviatedName string, next []Option) Option {
	return Option{
		FullName:        fullName,
		AbbreviatedName: abbreviatedName,
		kind:            KindCategory,
		next:            cloneOptions(next),
	}
}

// NewDynamicCategory builds a category whose children are generated per query.
func NewDynamicCategory(fullName, abbreviatedName string, gen Generator) Option {
	return Option{
		FullName:        fullName,
		AbbreviatedName: abbreviatedName,
		kind:            KindDynamicCategory,
		generate:        gen,
	}
}

// NewLeaf builds a selectable file or folder option.
func NewLeaf(fullName, abbreviatedName string, kind LeafKind, ref Reference) Option {
	return Option{
		FullName:        fullName,
		AbbreviatedName: abbreviatedName,
		kind:            KindLeaf,
		leafKind:        kind,
		ref:             ref,
	}
}

func (o Option) Kind() Kind { return o.kind }

// Next returns the static children of a category.
func (o Option) Next() []Option { return cloneOptions(o.next) }

// Generator returns the child generator of a dynamic category.
func (o Option) Generator() Generator { return o.generate }

func (o Option) LeafKind() LeafKind { return o.leafKind }

func (o Option) Reference() Reference { return o.ref }

// IsLeaf reports whether selecting the option completes the mention.
func (o Option) IsLeaf() bool { return o.kind == KindLeaf }

// IsCategory reports whether selecting the option narrows the path.
func (o Option) IsCategory() bool {
	return o.kind == KindCategory || o.kind == KindDynamicCategory
}

// Key identifies an option within a result list.
func (o Option) Key() string {
	if o.kind == KindLeaf {
		return string(o.leafKind) + ":" + o.ref.Path
	}
	return o.kind.String() + ":" + o.FullName
}

func cloneOptions(options []Option) []Option {
	if options == nil {
		return nil
	}
	dup := make([]Option, len(options))
	copy(dup, options)
	return dup
}
