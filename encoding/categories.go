package encoding

import "strings"

//CategoryDelimiter separates entries in the stored external category list.
const CategoryDelimiter = "|"

//SplitCategories decodes a delimited category list into its ordered
//elements. A value with no delimiter yields a single-element slice equal to
//the input.
func SplitCategories(raw string) []string {

	return strings.Split(raw, CategoryDelimiter)
}

//JoinCategories encodes categories into the stored delimited form.
func JoinCategories(categories []string) string {

	return strings.Join(categories, CategoryDelimiter)
}
