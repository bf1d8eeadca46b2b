package typechecker

// builtinFunctions are the intrinsics visible before the first statement.
func builtinFunctions() map[string]Symbol {
	return map[string]Symbol{
		"print": {
			Name: "print",
			Kind: SymbolFunction,
			Type: FunctionType{Return: voidType, MinArgs: 0, MaxArgs: -1},
		},
		"exit": {
			Name: "exit",
			Kind: SymbolFunction,
			Type: FunctionType{Return: voidType, MinArgs: 0, MaxArgs: 1},
		},
	}
}
