package devserver

import "context"

type authInfo struct {
	acct *account
	jti  string
}

type authKey struct{}

func contextWithAccount(ctx context.Context, acct *account, jti string) context.Context {
	return context.WithValue(ctx, authKey{}, authInfo{acct: acct, jti: jti})
}

func accountFromContext(ctx context.Context) (authInfo, bool) {
	info, ok := ctx.Value(authKey{}).(authInfo)
	return info, ok
}
