// Package locator expands glob patterns into the list of project files to
// rewrite. Patterns follow doublestar syntax, matched directories expand to
// the files below them, and .gitignore rules plus configured ignore globs are
// applied before the extension filter.
package locator
