// Package match holds the naming helpers shared by the generator and the
// runtime key mapper: identifier tokenization, the lowerCamel and snake_case
// conventions, and edit-distance suggestions for misspelled property names.
package match
