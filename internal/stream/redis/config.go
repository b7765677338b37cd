package redis

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	Stream        string
	Group         string
	ConsumerName  string
}

func NewRedisStreamConfig(addr string, password string, stream string, group string, consumerName string) *RedisStreamConfig {
	return &RedisStreamConfig{
		RedisAddr:     addr,
		RedisPassword: password,
		Stream:        stream,
		Group:         group,
		ConsumerName:  consumerName,
	}
}
