package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"cupcake-store/internal/cart"
	"cupcake-store/internal/dto"
	"cupcake-store/internal/model"
)

// APIError carries the server's error message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront api: %d: %s", e.StatusCode, e.Message)
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Storefront interface {
	Register(ctx context.Context, name, email, password string) (*model.PublicAccount, error)
	Login(ctx context.Context, email, password string) (*model.PublicAccount, error)
	Logout()
	CurrentAccount() *model.PublicAccount
	Me(ctx context.Context) (*model.PublicAccount, error)
	CheckAdmin(ctx context.Context, userID uint) (bool, error)

	ListCupcakes(ctx context.Context) ([]*model.Product, error)
	GetCupcake(ctx context.Context, id uint) (*model.Product, error)

	AddFavorite(ctx context.Context, cupcakeID uint) error
	RemoveFavorite(ctx context.Context, cupcakeID uint) error
	ListFavorites(ctx context.Context) ([]*model.Product, error)
	FavoriteIDs(ctx context.Context) ([]uint, error)
	IsFavorite(ctx context.Context, cupcakeID uint) (bool, error)

	PlaceOrder(ctx context.Context, customer Customer, c *cart.Cart) (*dto.CreateOrderResponse, error)
	MyOrders(ctx context.Context) ([]*dto.OrderSummary, error)

	AdminListOrders(ctx context.Context) ([]*dto.OrderSummary, error)
	AdminListCupcakes(ctx context.Context) ([]*model.Product, error)
	AdminCreateCupcake(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	AdminUpdateCupcake(ctx context.Context, id uint, input *dto.ProductInput) (*model.Product, error)
	AdminDeleteCupcake(ctx context.Context, id uint) error
	AdminOrderDetail(ctx context.Context, id uint) (*dto.OrderDetail, error)
	AdminUpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error
	AdminStats(ctx context.Context) (*dto.Stats, error)
}

type storefrontImpl struct {
	httpClient *http.Client
	baseApiURL string

	mu      sync.RWMutex
	token   string
	account *model.PublicAccount
}

// NewStorefront builds a client for baseApiURL, e.g. http://localhost:3001/api.
func NewStorefront(baseApiURL string, httpClient *http.Client) Storefront {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &storefrontImpl{
		httpClient: httpClient,
		baseApiURL: strings.TrimRight(baseApiURL, "/"),
	}
}

func (c *storefrontImpl) session() (string, *model.PublicAccount) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.account
}

func (c *storefrontImpl) setSession(token string, account *model.PublicAccount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.account = account
}

// clearSession only drops the session if it still holds token, so a login
// racing with a rejected request is kept.
func (c *storefrontImpl) clearSession(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == token {
		c.token = ""
		c.account = nil
	}
}

func (c *storefrontImpl) accountID() (uint, error) {
	_, account := c.session()
	if account == nil {
		return 0, fmt.Errorf("storefront: not logged in")
	}
	return account.ID, nil
}

func (c *storefrontImpl) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal req payload: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+path, body)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, _ := c.session()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		// an expired or revoked session is dropped so later calls go out as a guest
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.clearSession(token)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *storefrontImpl) authenticate(ctx context.Context, path string, in any) (*model.PublicAccount, error) {
	var res dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, in, &res); err != nil {
		return nil, err
	}
	c.setSession(res.Token, res.User)
	return res.User, nil
}

func (c *storefrontImpl) Register(ctx context.Context, name, email, password string) (*model.PublicAccount, error) {
	return c.authenticate(ctx, "/auth/register", &dto.RegisterRequest{Name: name, Email: email, Password: password})
}

func (c *storefrontImpl) Login(ctx context.Context, email, password string) (*model.PublicAccount, error) {
	return c.authenticate(ctx, "/auth/login", &dto.LoginRequest{Email: email, Password: password})
}

func (c *storefrontImpl) Logout() {
	c.setSession("", nil)
}

func (c *storefrontImpl) CurrentAccount() *model.PublicAccount {
	_, account := c.session()
	return account
}

func (c *storefrontImpl) Me(ctx context.Context) (*model.PublicAccount, error) {
	var account model.PublicAccount
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *storefrontImpl) CheckAdmin(ctx context.Context, userID uint) (bool, error) {
	var res dto.CheckAdminResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/auth/check-admin/%d", userID), nil, &res); err != nil {
		return false, err
	}
	return res.IsAdmin, nil
}

func (c *storefrontImpl) ListCupcakes(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := c.do(ctx, http.MethodGet, "/cupcakes", nil, &products)
	return products, err
}

func (c *storefrontImpl) GetCupcake(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cupcakes/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *storefrontImpl) AddFavorite(ctx context.Context, cupcakeID uint) error {
	userID, err := c.accountID()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/favorites", &dto.FavoriteRequest{UserID: userID, CupcakeID: cupcakeID}, nil)
}

func (c *storefrontImpl) RemoveFavorite(ctx context.Context, cupcakeID uint) error {
	userID, err := c.accountID()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d/%d", userID, cupcakeID), nil, nil)
}

func (c *storefrontImpl) ListFavorites(ctx context.Context) ([]*model.Product, error) {
	userID, err := c.accountID()
	if err != nil {
		return nil, err
	}
	var products []*model.Product
	err = c.do(ctx, http.MethodGet, fmt.Sprintf("/favorites/%d", userID), nil, &products)
	return products, err
}

func (c *storefrontImpl) FavoriteIDs(ctx context.Context) ([]uint, error) {
	userID, err := c.accountID()
	if err != nil {
		return nil, err
	}
	var ids []uint
	err = c.do(ctx, http.MethodGet, fmt.Sprintf("/favorites/%d/ids", userID), nil, &ids)
	return ids, err
}

func (c *storefrontImpl) IsFavorite(ctx context.Context, cupcakeID uint) (bool, error) {
	userID, err := c.accountID()
	if err != nil {
		return false, err
	}
	var res dto.FavoriteCheckResponse
	err = c.do(ctx, http.MethodGet, fmt.Sprintf("/favorites/%d/check/%d", userID, cupcakeID), nil, &res)
	return res.IsFavorite, err
}

func (c *storefrontImpl) PlaceOrder(ctx context.Context, customer Customer, shoppingCart *cart.Cart) (*dto.CreateOrderResponse, error) {
	if shoppingCart == nil || shoppingCart.IsEmpty() {
		return nil, fmt.Errorf("storefront: cart is empty")
	}

	req := &dto.CreateOrderRequest{
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		Items:         shoppingCart.OrderItems(),
	}

	var res dto.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *storefrontImpl) MyOrders(ctx context.Context) ([]*dto.OrderSummary, error) {
	var orders []*dto.OrderSummary
	err := c.do(ctx, http.MethodGet, "/orders/mine", nil, &orders)
	return orders, err
}

func (c *storefrontImpl) AdminListOrders(ctx context.Context) ([]*dto.OrderSummary, error) {
	var orders []*dto.OrderSummary
	err := c.do(ctx, http.MethodGet, "/orders", nil, &orders)
	return orders, err
}

func (c *storefrontImpl) AdminListCupcakes(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := c.do(ctx, http.MethodGet, "/admin/cupcakes", nil, &products)
	return products, err
}

func (c *storefrontImpl) AdminCreateCupcake(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	var res dto.ProductResponse
	if err := c.do(ctx, http.MethodPost, "/admin/cupcakes", input, &res); err != nil {
		return nil, err
	}
	return res.Cupcake, nil
}

func (c *storefrontImpl) AdminUpdateCupcake(ctx context.Context, id uint, input *dto.ProductInput) (*model.Product, error) {
	var res dto.ProductResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/cupcakes/%d", id), input, &res); err != nil {
		return nil, err
	}
	return res.Cupcake, nil
}

func (c *storefrontImpl) AdminDeleteCupcake(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/cupcakes/%d", id), nil, nil)
}

func (c *storefrontImpl) AdminOrderDetail(ctx context.Context, id uint) (*dto.OrderDetail, error) {
	var detail dto.OrderDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/orders/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *storefrontImpl) AdminUpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d", id), &dto.UpdateStatusRequest{Status: status}, nil)
}

func (c *storefrontImpl) AdminStats(ctx context.Context) (*dto.Stats, error) {
	var stats dto.Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
