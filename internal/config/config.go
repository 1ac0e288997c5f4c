package config

import (
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// 用于管理应用配置

const devJWTSecret = "coloring_dev_secret"

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Upload    UploadConfig    `mapstructure:"upload"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Frontend  FrontendConfig  `mapstructure:"frontend"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	TrustedProxies string `mapstructure:"trusted_proxies"` // 逗号分隔的 IP/CIDR，空值表示不信任任何代理
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// AdminConfig 单管理员账号，密码以 bcrypt 哈希形式保存
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type UploadConfig struct {
	Path            string `mapstructure:"path"`
	URLPrefix       string `mapstructure:"url_prefix"`
	MaxUploadSizeMB int    `mapstructure:"max_upload_size_mb"`
	MaxBodySizeMB   int    `mapstructure:"max_body_size_mb"`
	CacheControl    string `mapstructure:"cache_control"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	UploadRPS   float64 `mapstructure:"upload_rps"`
	UploadBurst int     `mapstructure:"upload_burst"`
	AuthRPS     float64 `mapstructure:"auth_rps"`
	AuthBurst   int     `mapstructure:"auth_burst"`
}

type FrontendConfig struct {
	DistPath string `mapstructure:"dist_path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console, json
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

// InitConfig 加载配置并监听配置文件变更
func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	enforceJWTSecretSafety()

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("🔄 检测到配置文件变更: %s", e.Name)
		loadAndStore(v)
	})
	if v.ConfigFileUsed() != "" {
		v.WatchConfig()
	}
	log.Println("✅ 配置加载成功")
}

// InitConfigWithoutWatch 仅加载一次配置，测试中使用
func InitConfigWithoutWatch(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	enforceJWTSecretSafety()
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 设置默认值
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trusted_proxies", "")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/coloring.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "coloring")
	v.SetDefault("database.password", "coloring")
	v.SetDefault("database.name", "coloring_db")
	v.SetDefault("database.ssl", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 12)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("upload.path", "uploads")
	v.SetDefault("upload.url_prefix", "/uploads/")
	v.SetDefault("upload.max_upload_size_mb", 10)
	v.SetDefault("upload.max_body_size_mb", 20)
	v.SetDefault("upload.cache_control", "public, max-age=86400")
	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "coloring")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.upload_rps", 2)
	v.SetDefault("rate_limit.upload_burst", 10)
	v.SetDefault("rate_limit.auth_rps", 1)
	v.SetDefault("rate_limit.auth_burst", 5)
	v.SetDefault("frontend.dist_path", "../frontend/dist")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			log.Fatalf("❌ 读取配置文件失败: %v", err)
		}
	}

	// 配置环境变量覆盖
	// 规则：所有环境变量必须以 COLORING_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 COLORING_SERVER_PORT
	v.SetEnvPrefix("COLORING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		log.Printf("❌ 配置解析失败: %v", err)
		return
	}

	if !strings.HasSuffix(tempConfig.Upload.URLPrefix, "/") {
		tempConfig.Upload.URLPrefix += "/"
	}

	// 安全检查
	if tempConfig.Server.Mode == "release" {
		if tempConfig.JWT.Secret == "" || tempConfig.JWT.Secret == devJWTSecret {
			log.Println("❌ [安全严重错误] 生产模式(release)下必须设置安全的 JWT Secret！")
		}
	} else {
		if tempConfig.JWT.Secret == "" {
			log.Println("⚠️ [开发模式警告] 未设置 JWT Secret，将使用默认不安全密钥进行开发")
			tempConfig.JWT.Secret = devJWTSecret
		}
	}

	appConfig.Store(&tempConfig)
	log.Println("✅ 配置已更新")
}

func enforceJWTSecretSafety() {
	// 首次启动安全检查：如果是 release 模式，拦截不安全的 JWT Secret
	curr := Get()
	if curr.Server.Mode == "release" {
		if curr.JWT.Secret == "" || curr.JWT.Secret == devJWTSecret {
			log.Fatal("❌ [安全严重错误] 生产模式(release)下必须设置安全的 JWT Secret！\n请设置环境变量 COLORING_JWT_SECRET 或在配置文件中指定 jwt.secret")
		}
	}
}

// SetForTest 直接替换当前配置快照
func SetForTest(c Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig.Store(&c)
}
