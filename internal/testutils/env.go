package testutils

import (
	"os"
	"sort"
)

// ConfigEnvPrefix 与 config 包中 viper 的 SetEnvPrefix 保持一致
const ConfigEnvPrefix = "COLORING_"

// SavedEnv 环境变量修改前的状态
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

// SetEnv 设置环境变量并返回旧值，配合 RestoreEnv 还原
func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

// SetConfigEnv 批量设置带 COLORING_ 前缀的配置覆盖项，如 {"SERVER_MODE": "debug"}
// 按键名排序设置，便于 RestoreEnv 逆序还原
func SetConfigEnv(values map[string]string) []SavedEnv {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	saved := make([]SavedEnv, 0, len(keys))
	for _, k := range keys {
		saved = append(saved, SetEnv(ConfigEnvPrefix+k, values[k]))
	}
	return saved
}

// RestoreEnv 逆序还原，同一个键被设置多次时回到最初的值
func RestoreEnv(envs []SavedEnv) {
	for i := len(envs) - 1; i >= 0; i-- {
		env := envs[i]
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
		} else {
			_ = os.Unsetenv(env.Key)
		}
	}
}
