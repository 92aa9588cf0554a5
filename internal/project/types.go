package project

const (
	// RootTag is the required tag of the document element.
	RootTag = "Project"

	// PropertyGroupTag is the container that receives new version elements.
	PropertyGroupTag = "PropertyGroup"

	// AssemblyVersionTag holds the assembly version.
	AssemblyVersionTag = "AssemblyVersion"

	// FileVersionTag holds the Win32 file version.
	FileVersionTag = "FileVersion"
)

// VersionTags lists the managed elements in the order they are applied.
var VersionTags = []string{AssemblyVersionTag, FileVersionTag}

// ElementChange describes what happened to one version element.
type ElementChange struct {
	// Tag is the element name.
	Tag string

	// Previous is the text the element held before, empty when created.
	Previous string

	// Created is true when the element did not exist.
	Created bool

	// CreatedGroup is true when a new PropertyGroup was added to hold it.
	CreatedGroup bool
}

// Change describes the outcome for one project file.
type Change struct {
	// Path is the file as it was passed to the writer.
	Path string

	// Elements holds one entry per tag in VersionTags order.
	Elements []ElementChange

	// Changed is false when the serialized document equals the original bytes.
	Changed bool
}

// Element returns the change recorded for tag.
func (c Change) Element(tag string) (ElementChange, bool) {
	for _, e := range c.Elements {
		if e.Tag == tag {
			return e, true
		}
	}
	return ElementChange{}, false
}
