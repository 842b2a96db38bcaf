package token

// Match pairs the brackets, braces and parentheses of toks. The result
// maps the index of each opening or closing token to the index of its
// partner and every other index to -1.
func Match(toks []Token) ([]int, error) {
	res := make([]int, len(toks))
	stack := make([]int, 0, 16)
	for i := range toks {
		res[i] = -1
		t := &toks[i]
		switch {
		case t.Type.IsOpen():
			stack = append(stack, i)
		case t.Type.IsClose():
			if len(stack) == 0 {
				return nil, &ErrImbalancedStructure{Close: t}
			}
			j := stack[len(stack)-1]
			if !t.Type.closes(toks[j].Type) {
				return nil, &ErrImbalancedStructure{Open: &toks[j], Close: t}
			}
			stack = stack[:len(stack)-1]
			res[i] = j
			res[j] = i
		}
	}
	if len(stack) != 0 {
		return nil, &ErrImbalancedStructure{Open: &toks[stack[len(stack)-1]]}
	}
	return res, nil
}
