// Package view loads the storefront and admin view components and renders
// resolved component chains into HTML.
package view

// ID identifies a view component. The value doubles as the name of the
// component's content file under the views directory.
type ID string

// Storefront views.
const (
	Main      ID = "main"
	Detail    ID = "detail"
	Login     ID = "login"
	Order     ID = "order"
	Footer    ID = "footer"
	Mypage    ID = "mypage"
	OrderList ID = "order-list"
	Point     ID = "point"
	Coupon    ID = "coupon"
)

// Admin back-office views.
const (
	AdminFrame          ID = "admin-frame"
	ProductRegistration ID = "product-registration"
	ProductManagement   ID = "product-management"
	OrderManagement     ID = "order-management"
)

type Tenant string

const (
	TenantStorefront Tenant = "storefront"
	TenantAdmin      Tenant = "admin"
)

// All lists every known component in a stable order.
func All() []ID {
	return []ID{
		Main, Detail, Login, Order, Footer,
		Mypage, OrderList, Point, Coupon,
		AdminFrame, ProductRegistration, ProductManagement, OrderManagement,
	}
}

func (id ID) Tenant() Tenant {
	switch id {
	case AdminFrame, ProductRegistration, ProductManagement, OrderManagement:
		return TenantAdmin
	default:
		return TenantStorefront
	}
}

func (id ID) FileName() string {
	return string(id) + ".md"
}
