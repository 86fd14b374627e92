package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage needs; it matches the
// pgxmock pool interface so repositories are testable without a server.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

// New creates storage with schema initialization and catalog seeding.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "database schema ready")
	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var _ repository.Factory = (*Storage)(nil)

// Factory methods for domain repositories.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customer (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            address1 TEXT NOT NULL DEFAULT '',
            address2 TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT '',
            zip TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS item (
            id BIGINT PRIMARY KEY,
            item_name TEXT NOT NULL,
            aspect_ratio TEXT NOT NULL,
            item_price NUMERIC(10,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS customer_order (
            id SERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customer(id),
            order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            order_status TEXT NOT NULL,
            order_total NUMERIC(10,2),
            stripe_charge_id TEXT,
            card_last4 TEXT,
            box_included BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS order_item (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES customer_order(id),
            item_id BIGINT NOT NULL REFERENCES item(id),
            item_status TEXT NOT NULL,
            has_hangers BOOLEAN NOT NULL DEFAULT FALSE,
            item_price NUMERIC(10,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_item_image (
            id SERIAL PRIMARY KEY,
            order_item_id BIGINT NOT NULL REFERENCES order_item(id),
            image_filepath TEXT NOT NULL,
            image_status TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_customer_order_status ON customer_order(order_status, order_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_item_order ON order_item(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_item_image_item ON order_item_image(order_item_id)`,
		`INSERT INTO item (id, item_name, aspect_ratio, item_price) VALUES
            (5, 'Lightbox Bundle', '4x4', 45.00),
            (6, 'Single 4x4', '4x4', 12.00),
            (7, 'Double 4x4', '4x4', 20.00),
            (8, 'Single 4x6', '4x6', 15.00),
            (9, 'Single 6x4', '6x4', 15.00)
            ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO customer (id, name, email) VALUES (1, 'Guest', 'guest@printdesk.local')
            ON CONFLICT (id) DO NOTHING`,
		`SELECT setval('customer_id_seq', GREATEST((SELECT MAX(id) FROM customer), 1))`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CustomerRepository implementation ---

const customerColumns = `id, name, email, phone, address1, address2, city, state, zip, created_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address1, &c.Address2, &c.City, &c.State, &c.Zip, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customer WHERE email=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customer WHERE id=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) Upsert(ctx context.Context, customer model.Customer) (int64, error) {
	const query = `INSERT INTO customer (name, email, phone, address1, address2, city, state, zip)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   ON CONFLICT (email) DO UPDATE SET
                       name = EXCLUDED.name,
                       phone = EXCLUDED.phone,
                       address1 = EXCLUDED.address1,
                       address2 = EXCLUDED.address2,
                       city = EXCLUDED.city,
                       state = EXCLUDED.state,
                       zip = EXCLUDED.zip
                   RETURNING id`
	var id int64
	err := r.storage.pool.QueryRow(ctx, query,
		customer.Name, customer.Email, customer.Phone,
		customer.Address1, customer.Address2, customer.City, customer.State, customer.Zip,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) GetItemType(ctx context.Context, itemTypeID int64) (*model.ItemType, error) {
	const query = `SELECT id, item_name, aspect_ratio, item_price FROM item WHERE id=$1`
	var it model.ItemType
	err := r.storage.pool.QueryRow(ctx, query, itemTypeID).Scan(&it.ID, &it.Name, &it.AspectRatio, &it.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrItemTypeNotFound
		}
		return nil, err
	}
	return &it, nil
}

// --- OrderRepository implementation ---

const insertOrderQuery = `INSERT INTO customer_order (customer_id, order_status, box_included)
                   VALUES ($1, $2, $3) RETURNING id`

const insertOrderItemQuery = `INSERT INTO order_item (order_id, item_id, item_status, has_hangers, item_price)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`

func (r *orderRepository) Create(ctx context.Context, customerID int64, boxIncluded bool) (int64, error) {
	var id int64
	err := r.storage.pool.QueryRow(ctx, insertOrderQuery, customerID, model.OrderStatusSubmittedPending, boxIncluded).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *orderRepository) AddLineItem(ctx context.Context, orderID, itemTypeID int64, price decimal.Decimal, hasHangers bool) (int64, error) {
	var id int64
	err := r.storage.pool.QueryRow(ctx, insertOrderItemQuery, orderID, itemTypeID, model.ItemStatusPending, hasHangers, price).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateWithItems writes the order header and every line item inside one
// transaction; an insert failure rolls back the whole submission.
func (r *orderRepository) CreateWithItems(ctx context.Context, customerID int64, boxIncluded bool, items []repository.NewLineItem) (int64, []int64, error) {
	var orderID int64
	itemIDs := make([]int64, 0, len(items))
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertOrderQuery, customerID, model.OrderStatusSubmittedPending, boxIncluded).Scan(&orderID); err != nil {
			return err
		}
		for _, item := range items {
			var id int64
			if err := tx.QueryRow(ctx, insertOrderItemQuery, orderID, item.ItemTypeID, model.ItemStatusPending, item.HasHangers, item.Price).Scan(&id); err != nil {
				return err
			}
			itemIDs = append(itemIDs, id)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return orderID, itemIDs, nil
}

func (r *orderRepository) AddLineItemImage(ctx context.Context, lineItemID int64, filepath string) error {
	const query = `INSERT INTO order_item_image (order_item_id, image_filepath, image_status)
                   VALUES ($1, $2, $3)`
	_, err := r.storage.pool.Exec(ctx, query, lineItemID, filepath, model.ItemStatusPending)
	return err
}

const orderAggregateQuery = `SELECT co.id, co.customer_id, co.order_date, co.order_status,
               co.order_total, co.stripe_charge_id, co.card_last4, co.box_included,
               c.name, c.email, c.phone, c.address1, c.address2, c.city, c.state, c.zip,
               oi.id, oi.item_id, i.item_name, i.aspect_ratio, oi.item_price, oi.has_hangers, oi.item_status,
               oii.id, oii.image_filepath, oii.image_status
        FROM customer_order co
        LEFT JOIN customer c ON co.customer_id = c.id
        LEFT JOIN order_item oi ON oi.order_id = co.id
        LEFT JOIN item i ON i.id = oi.item_id
        LEFT JOIN order_item_image oii ON oii.order_item_id = oi.id
        WHERE co.id = $1
        ORDER BY oi.id, oii.id`

func (r *orderRepository) GetWithItems(ctx context.Context, orderID int64) (*model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, orderAggregateQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return foldOrderRows(rows)
}

// foldOrderRows groups a flattened join result into the nested aggregate,
// deduplicating line items by id in first-seen order. Every read path that
// needs the aggregate goes through this fold.
func foldOrderRows(rows pgx.Rows) (*model.Order, error) {
	var order *model.Order
	itemIndex := map[int64]int{}

	for rows.Next() {
		var (
			o          model.Order
			cust       model.Customer
			custName   *string
			custEmail  *string
			custPhone  *string
			custAddr1  *string
			custAddr2  *string
			custCity   *string
			custState  *string
			custZip    *string
			itemID     *int64
			itemTypeID *int64
			itemName   *string
			itemAspect *string
			itemPrice  *decimal.Decimal
			hasHangers *bool
			itemStatus *string
			imageID    *int64
			imagePath  *string
			imageState *string
		)

		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CreatedAt, &o.Status,
			&o.Total, &o.ChargeID, &o.CardLast4, &o.BoxIncluded,
			&custName, &custEmail, &custPhone, &custAddr1, &custAddr2, &custCity, &custState, &custZip,
			&itemID, &itemTypeID, &itemName, &itemAspect, &itemPrice, &hasHangers, &itemStatus,
			&imageID, &imagePath, &imageState,
		)
		if err != nil {
			return nil, err
		}

		if order == nil {
			if custEmail != nil {
				cust.ID = o.CustomerID
				cust.Name = deref(custName)
				cust.Email = deref(custEmail)
				cust.Phone = deref(custPhone)
				cust.Address1 = deref(custAddr1)
				cust.Address2 = deref(custAddr2)
				cust.City = deref(custCity)
				cust.State = deref(custState)
				cust.Zip = deref(custZip)
				o.Customer = &cust
			}
			order = &o
		}

		if itemID == nil {
			continue
		}

		idx, seen := itemIndex[*itemID]
		if !seen {
			item := model.LineItem{
				ID:          *itemID,
				OrderID:     order.ID,
				ItemTypeID:  deref(itemTypeID),
				ItemName:    deref(itemName),
				AspectRatio: model.AspectRatio(deref(itemAspect)),
				HasHangers:  deref(hasHangers),
				Status:      model.ItemStatus(deref(itemStatus)),
			}
			if itemPrice != nil {
				item.Price = *itemPrice
			}
			order.Items = append(order.Items, item)
			idx = len(order.Items) - 1
			itemIndex[*itemID] = idx
		}

		if imageID != nil {
			order.Items[idx].Images = append(order.Items[idx].Images, model.LineItemImage{
				ID:         *imageID,
				LineItemID: *itemID,
				Filepath:   deref(imagePath),
				Status:     model.ItemStatus(deref(imageState)),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.OrderSummary, error) {
	query := `SELECT co.id, COALESCE(c.name, ''), co.order_date, co.order_status,
                     co.order_total, co.box_included, COUNT(oii.id)
              FROM customer_order co
              LEFT JOIN customer c ON co.customer_id = c.id
              LEFT JOIN order_item oi ON oi.order_id = co.id
              LEFT JOIN order_item_image oii ON oii.order_item_id = oi.id`

	var (
		conditions []string
		args       []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("co.order_status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(c.name ILIKE $%d OR co.id::text LIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` GROUP BY co.id, c.name ORDER BY co.order_date DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderSummary
	for rows.Next() {
		var s model.OrderSummary
		var count int64
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.CreatedAt, &s.Status, &s.Total, &s.BoxIncluded, &count); err != nil {
			return nil, err
		}
		s.PictureCount = int(count)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE customer_order SET order_status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) SetItemStatus(ctx context.Context, orderID, itemID int64, status model.ItemStatus) error {
	const query = `UPDATE order_item SET item_status=$1 WHERE id=$2 AND order_id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, itemID, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrItemNotFoundInOrder
	}
	return nil
}

// Subtotal sums snapshot prices straight off order_item: one row per line
// item, so an image fan-out can never inflate the figure.
func (r *orderRepository) Subtotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(item_price), 0) FROM order_item WHERE order_id=$1`
	var subtotal decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&subtotal); err != nil {
		return decimal.Zero, err
	}
	return subtotal, nil
}

func (r *orderRepository) CompleteCheckout(ctx context.Context, orderID int64, update repository.CheckoutUpdate) error {
	const query = `UPDATE customer_order
                   SET customer_id=$1, order_total=$2, stripe_charge_id=$3, card_last4=$4, order_status=$5
                   WHERE id=$6`
	tag, err := r.storage.pool.Exec(ctx, query,
		update.CustomerID, update.Total, update.ChargeID, update.CardLast4, update.Status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
