package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/spf13/viper"
)

// Provider names accepted by AI_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderArk       = "ark"
	ProviderLangChain = "langchain"
)

const (
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultServerURL     = "http://localhost:8080"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Client ClientConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	ServerURL string
}

// AIConfig selects and parameterises the language-model provider.
type AIConfig struct {
	Provider  string
	Gemini    GeminiConfig
	Ark       ArkConfig
	LangChain LangChainConfig
}

// GeminiConfig targets Gemini through its OpenAI-compatible endpoint.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ArkConfig 描述火山方舟模型配置。
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
}

// LangChainConfig points langchaingo at any OpenAI-compatible server.
type LangChainConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Load 从 .env 之后的环境变量以及可选配置文件加载配置。
// An empty path skips the config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	server, err := loadServerConfig(v)
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Client: ClientConfig{ServerURL: strings.TrimRight(getString(v, "EAGLECHAT_SERVER_URL"), "/")},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("AI_PROVIDER", ProviderGemini)
	v.SetDefault("GEMINI_BASE_URL", DefaultGeminiBaseURL)
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("ARK_REGION", "cn-beijing")
	v.SetDefault("LLM_BASE_URL", "http://localhost:11434/v1/")
	v.SetDefault("EAGLECHAT_SERVER_URL", DefaultServerURL)
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig(v *viper.Viper) (ServerConfig, error) {
	port := getString(v, "PORT")
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadAIConfig(v *viper.Viper) (AIConfig, error) {
	provider := strings.ToLower(getString(v, "AI_PROVIDER"))
	switch provider {
	case ProviderGemini, ProviderArk, ProviderLangChain:
	default:
		return AIConfig{}, fmt.Errorf("invalid AI_PROVIDER value %q", provider)
	}

	// The provider key is read here but only checked when a request reaches
	// the provider.
	return AIConfig{
		Provider: provider,
		Gemini: GeminiConfig{
			APIKey:  getString(v, "GEMINI_API_KEY"),
			BaseURL: getString(v, "GEMINI_BASE_URL"),
			Model:   getString(v, "GEMINI_MODEL"),
		},
		Ark: ArkConfig{
			APIKey:    getString(v, "ARK_API_KEY"),
			AccessKey: getString(v, "ARK_ACCESS_KEY"),
			SecretKey: getString(v, "ARK_SECRET_KEY"),
			Model:     getString(v, "ARK_MODEL"),
			BaseURL:   getString(v, "ARK_BASE_URL"),
			Region:    getString(v, "ARK_REGION"),
		},
		LangChain: LangChainConfig{
			APIKey:  getString(v, "LLM_API_KEY"),
			BaseURL: getString(v, "LLM_BASE_URL"),
			Model:   getString(v, "LLM_MODEL"),
		},
	}, nil
}

// Enabled 表示是否提供了必需的密钥。
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c ArkConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
	}

	// 每条消息只调用一次模型，关闭 SDK 自带的重试。
	noRetry := 0
	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:    c.BaseURL,
		Region:     c.Region,
		APIKey:     c.APIKey,
		AccessKey:  c.AccessKey,
		SecretKey:  c.SecretKey,
		Model:      c.Model,
		RetryTimes: &noRetry,
	})
}

func getString(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
