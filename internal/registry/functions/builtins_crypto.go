package functions

import (
	"encoding/base64"

	"github.com/google/uuid"

	"github.com/sandboxeval/sandboxeval/internal/value"
)

// registerCrypto installs Crypto.uuid (v4, via google/uuid — the
// pack's canonical UUID library, pulled from funvibe-funxy's
// dependency graph) and base64 encode/decode with empty-string
// fallback on malformed input, per spec §4.B/§7.
func registerCrypto(r *Registry) {
	must(r.Register(SafeFunction{
		Name: "Crypto.uuid", Category: "crypto", MinArgs: 0, MaxArgs: 0,
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(uuid.NewString()), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Crypto.base64Encode", Category: "crypto", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			return value.String(base64.StdEncoding.EncodeToString([]byte(args[0].Str()))), nil
		},
	}))

	must(r.Register(SafeFunction{
		Name: "Crypto.base64Decode", Category: "crypto", MinArgs: 1, MaxArgs: 1,
		TypeChecks: []TypeCheck{IsString},
		Impl: func(args []value.Value) (value.Value, error) {
			decoded, err := base64.StdEncoding.DecodeString(args[0].Str())
			if err != nil {
				return value.String(""), nil
			}
			return value.String(string(decoded)), nil
		},
	}))
}
