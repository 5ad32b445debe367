package webdav

import (
	"github.com/studio-b12/gowebdav"
)

// Config WebDAV 连接配置
type Config struct {
	IsEnabled  bool   `yaml:"is-enable"`
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV 远端存储客户端
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// 相同连接参数复用同一个客户端，配置热更新反复调 NewClient 也不会重复建连
var clients = make(map[string]*WebDAV)

// NewClient 创建或复用 WebDAV 客户端
func NewClient(conf *Config) (*WebDAV, error) {
	key := conf.Endpoint + conf.Path + conf.User + conf.CustomPath
	if c, ok := clients[key]; ok {
		return c, nil
	}

	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	c.Connect()

	w := &WebDAV{Client: c, Config: conf}
	clients[key] = w
	return w, nil
}
