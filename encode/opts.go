package encode

type EncodeOption func(*EncState)

// EncodeQuote sets the delimiter of new string literals, '"' or '\''. By
// default the delimiter used most often in the rendered tree is chosen.
func EncodeQuote(q byte) EncodeOption {
	return func(es *EncState) { es.quote = q }
}

// EncodeIndent sets the indentation unit of new nested items.
func EncodeIndent(unit string) EncodeOption {
	return func(es *EncState) { es.unit = unit }
}

// EncodeTrailingComma sets whether new multi line containers end their
// last item with a comma.
func EncodeTrailingComma(v bool) EncodeOption {
	return func(es *EncState) { es.trailing = &v }
}

// EncodeNewline sets the line break written before new lines, "\n" or
// "\r\n". By default the line breaks of the rendered tree are followed.
func EncodeNewline(nl string) EncodeOption {
	return func(es *EncState) { es.nl = nl }
}
