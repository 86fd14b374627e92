package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Orders() OrderRepository
	Catalog() CatalogRepository
}
