package routes

import (
	"sync"

	"github.com/debemdeboas/brandi/internal/view"
)

// StorefrontRoutes declares the customer storefront and the admin back-office.
// The default entry "/" forwards to the main page.
func StorefrontRoutes() []Route {
	return []Route{
		{Path: "/main", Name: "main", View: view.Main},
		{Path: "/detail", Name: "detail", View: view.Detail},
		{Path: "/login", Name: "login", View: view.Login},
		{Path: "/order", Name: "order", View: view.Order},
		{
			Path:     "/mypage",
			Name:     "mypage",
			View:     view.Mypage,
			Redirect: "/mypage/orderList",
			Children: []Route{
				{Path: "", View: view.OrderList, Redirect: "/mypage/orderList"},
				{Path: "orderList", Name: "orderList", View: view.OrderList},
				{Path: "point", Name: "point", View: view.Point},
				{Path: "coupon", Name: "coupon", View: view.Coupon},
				// qna and faq have no screens of their own yet and mount Mypage.
				{Path: "qna", Name: "qna", View: view.Mypage},
				{Path: "faq", Name: "faq", View: view.Mypage},
			},
		},
		{Path: "/", Redirect: "/main"},
		{
			Path: "/admin",
			Name: "adminFrame",
			View: view.AdminFrame,
			Children: []Route{
				{Path: "productRegistration", Name: "productRegistration", View: view.ProductRegistration},
				{Path: "productManagement", Name: "productManagement", View: view.ProductManagement},
				{Path: "orderManagement", Name: "orderManagement", View: view.OrderManagement},
			},
		},
		{Path: "/footer", Name: "footer", View: view.Footer},
	}
}

// Storefront returns the process-wide storefront table. It is built on first
// use and never modified afterwards.
var Storefront = sync.OnceValue(func() *Table {
	return MustNew(StorefrontRoutes()...)
})
