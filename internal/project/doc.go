// Package project reads MSBuild project files, sets their AssemblyVersion and
// FileVersion elements and writes them back.
//
// Existing elements are looked up anywhere in the document, not only under the
// root, so a version nested in any PropertyGroup (conditional ones included) is
// updated in place. When an element is missing it is appended to the first
// PropertyGroup in document order, or to a new PropertyGroup under the root.
package project
