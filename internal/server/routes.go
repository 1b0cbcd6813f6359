package server

import (
	"marketplace/internal/handler"
)

// Handlersはルート登録に必要なハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Business *handler.BusinessHandler
	Order    *handler.OrderHandler
	Seller   *handler.SellerHandler
	Admin    *handler.AdminHandler
}

// RegisterRoutesは全ハンドラを /api 配下に載せる
func (s *Server) RegisterRoutes(h Handlers) {
	api := s.APIGroup()

	h.Auth.RegisterRoutes(api, s.cfg)
	h.Product.RegisterRoutes(api, s.cfg)
	h.Category.RegisterRoutes(api, s.cfg)
	h.Business.RegisterRoutes(api, s.cfg)
	h.Order.RegisterRoutes(api, s.cfg)
	h.Seller.RegisterRoutes(api, s.cfg)
	h.Admin.RegisterRoutes(api, s.cfg)
}
