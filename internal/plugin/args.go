package plugin

import "fmt"

// ArgError reports a signal body that does not match the expected signature.
type ArgError struct {
	Index    int
	Expected string
	Actual   string
	// Count is set when the arity is wrong; Index is -1 in that case.
	Count int
}

func (e *ArgError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("expected %d arguments, message has %d", len(e.Expected), e.Count)
	}
	return fmt.Sprintf("argument %d is specified to be of type %q, but is actually of type %q",
		e.Index, typeName(e.Expected), e.Actual)
}

// Decode stores args into dst according to signature, one D-Bus type code
// per argument: 's' (*string), 'u' (*uint32), 'i' (*int32).
//
// Types must match exactly. No conversions are made, so an int32 never
// satisfies 'u' and vice versa.
func Decode(args []any, signature string, dst ...any) error {
	if len(signature) != len(dst) {
		panic(fmt.Sprintf("plugin.Decode: signature %q has %d codes, %d destinations", signature, len(signature), len(dst)))
	}
	if len(args) != len(signature) {
		return &ArgError{Index: -1, Expected: signature, Count: len(args)}
	}

	for i := range signature {
		code := signature[i]
		ok := false
		switch code {
		case 's':
			var v string
			if v, ok = args[i].(string); ok {
				*(dst[i].(*string)) = v
			}
		case 'u':
			var v uint32
			if v, ok = args[i].(uint32); ok {
				*(dst[i].(*uint32)) = v
			}
		case 'i':
			var v int32
			if v, ok = args[i].(int32); ok {
				*(dst[i].(*int32)) = v
			}
		default:
			panic(fmt.Sprintf("plugin.Decode: unsupported type code %q", code))
		}
		if !ok {
			return &ArgError{Index: i, Expected: string(code), Actual: goTypeName(args[i])}
		}
	}
	return nil
}

func typeName(code string) string {
	switch code {
	case "s":
		return "string"
	case "u":
		return "uint32"
	case "i":
		return "int32"
	default:
		return code
	}
}

func goTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
