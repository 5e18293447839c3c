// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// ServiceInfo は /healthz で公開する構成情報です。APIキーなどの秘密情報は含めません。
type ServiceInfo struct {
	Provider    string `json:"provider"`
	PrimaryTier string `json:"primary_tier"`
	Fallback    bool   `json:"fallback"`
	Cache       bool   `json:"cache"`
	Diagnostics bool   `json:"diagnostics"`
}

type healthResponse struct {
	Status string `json:"status"`
	ServiceInfo
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理するハンドラーを返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(info ServiceInfo) gin.HandlerFunc {
	body := healthResponse{Status: "ok", ServiceInfo: info}
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case "HEAD":
			c.Status(200)
		case "OPTIONS":
			c.Status(204)
		default:
			c.JSON(200, body)
		}
	}
}
