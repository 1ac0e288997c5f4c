package consts

const (
	// MembersDir 会员涂色结果目录（相对上传根目录），该目录下文件不允许通过清理接口删除
	MembersDir = "members"

	// ColoredFilePrefix 涂色结果文件名前缀
	ColoredFilePrefix = "colored_"

	// DefaultImageMime 无法从 data URL 解析 mime 时的默认值
	DefaultImageMime = "image/png"

	// DefaultImageExt 上传文件扩展名不在白名单时的默认扩展名
	DefaultImageExt = ".png"

	// DefaultResultPageSize 结果列表默认分页大小
	DefaultResultPageSize = 24
)

// AllowedUploadExtensions 原图上传允许保留的扩展名
var AllowedUploadExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp"}
