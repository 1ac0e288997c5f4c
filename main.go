package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jaehwan-AI/coloring-web/internal/config"
	"github.com/jaehwan-AI/coloring-web/internal/consts"
	"github.com/jaehwan-AI/coloring-web/internal/db"
	"github.com/jaehwan-AI/coloring-web/internal/di"
	"github.com/jaehwan-AI/coloring-web/internal/logger"
	"github.com/jaehwan-AI/coloring-web/internal/middleware"
	adminservice "github.com/jaehwan-AI/coloring-web/internal/modules/admin/service"
	"github.com/jaehwan-AI/coloring-web/internal/platform/storage"
	"github.com/jaehwan-AI/coloring-web/internal/router"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	hashPassword := flag.String("hash-password", "", "输出密码的 bcrypt 哈希（用于 admin.password_hash）并退出")
	flag.Parse()

	if *hashPassword != "" {
		hashed, err := adminservice.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("❌ 生成密码哈希失败: %v", err)
		}
		fmt.Println(hashed)
		return
	}

	config.InitConfig(*configDir)
	cfg := config.Get()

	zl, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("❌ 初始化日志失败: %v", err)
	}
	defer logger.Sync()

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		zl.Fatal("数据库初始化失败", zap.Error(err))
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			zl.Warn("关闭数据库失败", zap.Error(err))
		}
	}()

	uploads, err := ensureUploadRoot(cfg.Upload)
	if err != nil {
		zl.Fatal("上传目录不可用", zap.Error(err))
	}

	app, err := di.InitializeApplication(gormDB, uploads, cfg.Redis)
	if err != nil {
		zl.Fatal("依赖初始化失败", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			zl.Warn("释放资源失败", zap.Error(err))
		}
	}()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	applyTrustedProxies(r, cfg.Server.TrustedProxies)

	app.Router.Init(r)
	router.MountUploads(r, uploads)

	distFS := resolveFrontendFS(GetFrontendAssets(), cfg.Frontend.DistPath)
	router.MountFrontend(r, distFS, uploads.URLPrefix())

	// 导出模式
	if *exportRoutes {
		if err := exportAPI(r, "routes.json"); err != nil {
			zl.Fatal("导出路由失败", zap.Error(err))
		}
		fmt.Println("✅ 路由已成功导出到 routes.json")
		return // 导出后直接退出程序，不启动 Web 服务
	}

	printWelcomeMessage(distFS)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("服务强制关闭", zap.Error(err))
		return
	}
	zl.Info("服务已退出")
}

// ensureUploadRoot 校验上传目录位置并创建目录
func ensureUploadRoot(cfg config.UploadConfig) (*storage.Uploads, error) {
	uploads := storage.NewUploads(cfg.Path, cfg.URLPrefix)
	if err := checkSecurePath(uploads.Root()); err != nil {
		return nil, err
	}
	if err := uploads.EnsureRoot(); err != nil {
		return nil, fmt.Errorf("无法创建上传目录: %w", err)
	}
	return uploads, nil
}

// resolveFrontendFS 嵌入资源优先，其次为磁盘上包含 index.html 的 dist 目录
func resolveFrontendFS(embedded fs.FS, distPath string) fs.FS {
	if embedded != nil {
		return embedded
	}
	if strings.TrimSpace(distPath) == "" {
		return nil
	}
	info, err := os.Stat(filepath.Join(distPath, "index.html"))
	if err != nil || info.IsDir() {
		logger.L().Info("未找到前端构建产物，仅提供 API", zap.String("dist_path", distPath))
		return nil
	}
	return os.DirFS(distPath)
}

// applyTrustedProxies 空值或非法值均视为不信任任何代理
func applyTrustedProxies(r *gin.Engine, value string) {
	proxies := splitTrustedProxyList(value)
	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		logger.L().Warn("trusted_proxies 配置无效，已禁用代理信任", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
}

func splitTrustedProxyList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\n', '\t', '\r':
			return true
		}
		return false
	})
}

func printWelcomeMessage(distFS fs.FS) {
	frontendVersion := "未启用"
	if distFS != nil {
		frontendVersion = "未知版本"
		if vData, err := fs.ReadFile(distFS, "version"); err == nil {
			frontendVersion = strings.TrimSpace(string(vData))
		}
	}

	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🎨  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  后端版本 : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   💻  前端版本 : %s\n", frontendVersion)
	fmt.Printf(" │   🔥  服务端口 : %s\n", config.Get().Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine, target string) error {
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	exportList := make([]RouteInfo, 0, len(r.Routes()))
	for _, route := range r.Routes() {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, err := json.MarshalIndent(exportList, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(target, file, 0644)
}

// checkSecurePath 上传目录不能是项目根目录，位于项目内时必须在安全子目录下
func checkSecurePath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("无法获取当前工作目录: %w", err)
	}

	if absPath == cwd {
		return fmt.Errorf("安全配置错误: 静态资源目录 '%s' 不能设置为项目根目录", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		// 项目目录之外的路径由部署者自行负责
		return nil
	}

	allowedDirs := []string{"uploads", "public", "assets", "static", "tmp", "data"}
	firstComponent := strings.Split(filepath.ToSlash(rel), "/")[0]
	for _, allowed := range allowedDirs {
		if strings.EqualFold(firstComponent, allowed) {
			return nil
		}
	}
	return fmt.Errorf("安全配置错误: 静态资源目录 '%s' 必须位于项目根目录下的安全子目录中 (如 %v)", path, allowedDirs)
}
