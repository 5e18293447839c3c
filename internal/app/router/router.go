// Package router はHTTPルーティングを組み立てます。
package router

import (
	"github.com/gin-gonic/gin"

	comparisonhandler "stock_compare/internal/feature/comparison/transport/handler"
	"stock_compare/internal/platform/http/handler"
	jwtmw "stock_compare/internal/platform/jwt"
)

// Options はルーター生成時の設定です。
type Options struct {
	// JWTSecret が空でない場合、比較エンドポイントにBearerトークンを要求します。
	JWTSecret string
	Info      handler.ServiceInfo
}

func NewRouter(comparison *comparisonhandler.ComparisonHandler, opts Options) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	health := handler.Health(opts.Info)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	api := r.Group("/")
	if opts.JWTSecret != "" {
		// リクエストヘッダーに JWT が必要になる
		api.Use(jwtmw.AuthRequired(opts.JWTSecret))
	}
	{
		api.GET("/compare", comparison.CompareHandler)
		api.GET("/gains/:code", comparison.GainsHandler)
	}

	return r
}
