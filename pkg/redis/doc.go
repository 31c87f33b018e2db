// Package redis provides a retrying connection helper for the go-redis
// client. It exists so deployments that persist client state through
// kv.RedisStore have one place to configure and establish the connection.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := kv.NewRedisStore(client, "pharmago")
package redis
