// Package mocks provides centralized mock implementations for testing.
//
// Each mock has a function field per interface method. Tests set only the
// fields they need; an unset field falls back to a simple default.
//
//	tokens := &mocks.MockTokenService{
//	    VerifyFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: 1}, nil
//	    },
//	}
package mocks
