package scanbill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"scanbill_cli/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized    = errors.New("scanbill unauthorized")
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrMissingStoreID  = errors.New("store id is required")
	ErrMissingSerial   = errors.New("serial number is required")
)

// APIError is the single normalized shape every backend failure takes at
// the client boundary. Message carries the backend's own message when the
// error body exposes one as a plain string, and is empty otherwise.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("scanbill api error: %s", e.Status)
	}
	return fmt.Sprintf("scanbill api error: %s: %s", e.Status, e.Message)
}

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})

	return &Client{
		http:   httpClient,
		logger: logger.Named("api"),
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	var user User
	body := loginRequest{Username: strings.TrimSpace(username), Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (c *Client) RegisterStore(ctx context.Context, reg StoreRegistration) (Store, error) {
	var store Store
	if err := c.do(ctx, http.MethodPost, "/api/auth/register-store", nil, reg, &store); err != nil {
		return Store{}, err
	}
	return store, nil
}

func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.do(ctx, http.MethodGet, "/api/auth/stores", nil, nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (c *Client) ListProducts(ctx context.Context, storeID string) ([]Product, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, ErrMissingStoreID
	}
	var products []Product
	query := map[string]string{"storeId": storeID}
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, barcode string) (Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return Product{}, errors.New("barcode is required")
	}
	var product Product
	path := fmt.Sprintf("/api/products/%s", barcode)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (c *Client) ListUnits(ctx context.Context, barcode, storeID string) ([]InventoryUnit, error) {
	barcode = strings.TrimSpace(barcode)
	storeID = strings.TrimSpace(storeID)
	if barcode == "" {
		return nil, errors.New("barcode is required")
	}
	if storeID == "" {
		return nil, ErrMissingStoreID
	}
	var units []InventoryUnit
	path := fmt.Sprintf("/api/products/%s/units", barcode)
	query := map[string]string{"storeId": storeID}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (c *Client) GetCart(ctx context.Context, userID, storeID string) (Cart, error) {
	var cart Cart
	path := fmt.Sprintf("/api/cart/%s", userID)
	query := map[string]string{"storeId": storeID}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

func (c *Client) AddUnit(ctx context.Context, userID, storeID, serialNumber string) (Cart, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return Cart{}, ErrMissingSerial
	}
	var cart Cart
	path := fmt.Sprintf("/api/cart/%s/add", userID)
	query := map[string]string{"serialNumber": serialNumber, "storeId": storeID}
	if err := c.do(ctx, http.MethodPost, path, query, nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

func (c *Client) RemoveUnit(ctx context.Context, userID, storeID, serialNumber string) (Cart, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return Cart{}, ErrMissingSerial
	}
	var cart Cart
	path := fmt.Sprintf("/api/cart/%s/remove", userID)
	query := map[string]string{"serialNumber": serialNumber, "storeId": storeID}
	if err := c.do(ctx, http.MethodDelete, path, query, nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

func (c *Client) ListOrders(ctx context.Context, storeID string) ([]Order, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, ErrMissingStoreID
	}
	var orders []Order
	query := map[string]string{"storeId": storeID}
	if err := c.do(ctx, http.MethodGet, "/api/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Checkout(ctx context.Context, userID, storeID, customerName, customerMobile string) (Order, error) {
	var order Order
	path := fmt.Sprintf("/api/orders/checkout/%s", userID)
	query := map[string]string{
		"customerName":   strings.TrimSpace(customerName),
		"customerMobile": strings.TrimSpace(customerMobile),
		"storeId":        storeID,
	}
	if err := c.do(ctx, http.MethodPost, path, query, nil, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (c *Client) GetReceipt(ctx context.Context, orderID string) (Receipt, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Receipt{}, errors.New("order id is required")
	}
	var receipt Receipt
	path := fmt.Sprintf("/api/receipts/%s", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &receipt); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return Receipt{}, fmt.Errorf("%w: %s", ErrReceiptNotFound, orderID)
		}
		return Receipt{}, err
	}
	return receipt, nil
}

func (c *Client) GetStats(ctx context.Context, storeID string) (Stats, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return Stats{}, ErrMissingStoreID
	}
	var stats Stats
	query := map[string]string{"storeId": storeID}
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", query, nil, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (c *Client) ListAdminOrders(ctx context.Context, storeID string) ([]Order, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, ErrMissingStoreID
	}
	var orders []Order
	query := map[string]string{"storeId": storeID}
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateProduct registers a product and seeds initialStock inventory units
// for it. The stock count only matters at creation time; replenishment goes
// through AddInventory.
func (c *Client) CreateProduct(ctx context.Context, product NewProduct, initialStock int) (Product, error) {
	if strings.TrimSpace(product.StoreID) == "" {
		return Product{}, ErrMissingStoreID
	}
	if initialStock < 0 {
		initialStock = 0
	}
	var created Product
	query := map[string]string{"initialStock": strconv.Itoa(initialStock)}
	if err := c.do(ctx, http.MethodPost, "/api/admin/products", query, product, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errors.New("product id is required")
	}
	path := fmt.Sprintf("/api/admin/products/%s", productID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) AddInventory(ctx context.Context, barcode string, quantity int, storeID string) error {
	barcode = strings.TrimSpace(barcode)
	storeID = strings.TrimSpace(storeID)
	if barcode == "" {
		return errors.New("barcode is required")
	}
	if storeID == "" {
		return ErrMissingStoreID
	}
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	query := map[string]string{
		"barcode":  barcode,
		"quantity": strconv.Itoa(quantity),
		"storeId":  storeID,
	}
	return c.do(ctx, http.MethodPost, "/api/admin/inventory/add", query, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("scanbill request: %w", err)
	}
	if resp.IsError() {
		err := apiErrorFromResponse(resp)
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func apiErrorFromResponse(resp *resty.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Message:    backendMessage(resp.Body()),
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error())
	default:
		return apiErr
	}
}

// backendMessage digs the human-readable message out of an error body. The
// backend is inconsistent about which field it uses, so both "message" and
// "error" are tried, and anything that is not a plain string is discarded.
func backendMessage(body []byte) string {
	var payload struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg, ok := payload.Message.(string); ok && strings.TrimSpace(msg) != "" {
		return strings.TrimSpace(msg)
	}
	if msg, ok := payload.Error.(string); ok && strings.TrimSpace(msg) != "" {
		return strings.TrimSpace(msg)
	}
	return ""
}
