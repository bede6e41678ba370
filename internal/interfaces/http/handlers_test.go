package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/bootstrap"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newSeededApp app completa sobre el almacén en memoria con el catálogo demo.
func newSeededApp(t *testing.T) *fiber.App {
	t.Helper()
	backend := bootstrap.NewMemoryBackend(memory.Options{InvoiceBase: 1000, POBase: 2000})
	require.NoError(t, seed.Load(context.Background(), backend.SeedTargets(), seed.DefaultPassword, zerolog.Nop()))

	deps := backend.RouterDeps(bootstrap.Settings{
		TaxRate:   decimal.RequireFromString("0.12"),
		StoreName: "Tienda Test",
		Locale:    language.English,
		JWT:       auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	}, zerolog.Nop())
	return apphttp.NewApp("tienda-test", zerolog.Nop(), deps)
}

// call envía una petición JSON y devuelve el status y el cuerpo crudo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: username, Password: seed.DefaultPassword})
	require.Equal(t, http.StatusOK, status, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

func getProduct(t *testing.T, app *fiber.App, token, id string) dto.ProductResponse {
	t.Helper()
	status, body := call(t, app, http.MethodGet, "/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := newSeededApp(t)
	status, body := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "tienda-test")
}

func TestLogin(t *testing.T) {
	app := newSeededApp(t)

	t.Run("credenciales válidas devuelven token y usuario", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/auth/login", "",
			dto.LoginRequest{Username: "cashier", Password: seed.DefaultPassword})
		require.Equal(t, http.StatusOK, status)
		var out dto.LoginResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "cashier", out.User.Username)
		assert.Equal(t, "Cashier", out.User.Role)
		assert.NotContains(t, string(body), "password_hash")
	})

	t.Run("password incorrecto y usuario inexistente dan el mismo 401", func(t *testing.T) {
		for _, in := range []dto.LoginRequest{
			{Username: "cashier", Password: "nope"},
			{Username: "ghost", Password: seed.DefaultPassword},
		} {
			status, body := call(t, app, http.MethodPost, "/api/auth/login", "", in)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))
		}
	})

	t.Run("body sin password es 400", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION", errorCode(t, body))
	})

	t.Run("me devuelve el usuario del token", func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/auth/me", login(t, app, "clerk"), nil)
		require.Equal(t, http.StatusOK, status)
		var u dto.UserResponse
		require.NoError(t, json.Unmarshal(body, &u))
		assert.Equal(t, "Inventory Clerk", u.Role)
	})

	t.Run("ruta protegida sin token es 401", func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/api/products", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesFlow(t *testing.T) {
	app := newSeededApp(t)
	cashier := login(t, app, "cashier")

	var sale dto.SaleResponse
	t.Run("venta válida descuenta stock y calcula totales", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/sales", cashier, map[string]any{
			"items":           []map[string]any{{"product_id": "p1", "quantity": 2}},
			"amount_tendered": "1000",
		})
		require.Equal(t, http.StatusCreated, status, string(body))
		require.NoError(t, json.Unmarshal(body, &sale))

		assert.Equal(t, "INV-1001", sale.InvoiceNumber)
		assert.True(t, decimal.RequireFromString("500").Equal(sale.Subtotal))
		assert.True(t, decimal.RequireFromString("60").Equal(sale.Tax))
		assert.True(t, decimal.RequireFromString("560").Equal(sale.Total))
		assert.True(t, decimal.RequireFromString("440").Equal(sale.Change))
		assert.Equal(t, 48, getProduct(t, app, cashier, "p1").Stock)
	})

	t.Run("pago insuficiente es 402 y no toca stock", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/sales", cashier, map[string]any{
			"items":           []map[string]any{{"product_id": "p1", "quantity": 1}},
			"amount_tendered": "10",
		})
		assert.Equal(t, http.StatusPaymentRequired, status)
		assert.Equal(t, "INSUFFICIENT_PAYMENT", errorCode(t, body))
		assert.Equal(t, 48, getProduct(t, app, cashier, "p1").Stock)
	})

	t.Run("stock insuficiente es 409 y la venta completa se revierte", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/sales", cashier, map[string]any{
			"items": []map[string]any{
				{"product_id": "p1", "quantity": 1},
				{"product_id": "p2", "quantity": 6},
			},
			"amount_tendered": "100000",
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))
		assert.Equal(t, 48, getProduct(t, app, cashier, "p1").Stock)
		assert.Equal(t, 5, getProduct(t, app, cashier, "p2").Stock)
	})

	t.Run("carrito vacío es 400", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/sales", cashier, map[string]any{
			"items": []map[string]any{}, "amount_tendered": "10",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION", errorCode(t, body))
	})

	t.Run("el encargado de inventario no puede vender", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/sales", login(t, app, "clerk"), map[string]any{
			"items":           []map[string]any{{"product_id": "p1", "quantity": 1}},
			"amount_tendered": "1000",
		})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "FORBIDDEN", errorCode(t, body))
	})

	t.Run("detalle, listado y recibo", func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/sales/"+sale.ID, cashier, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "INV-1001")

		status, body = call(t, app, http.MethodGet, "/api/sales?limit=10", cashier, nil)
		require.Equal(t, http.StatusOK, status)
		var list []dto.SaleResponse
		require.NoError(t, json.Unmarshal(body, &list))
		require.Len(t, list, 1)

		req := httptest.NewRequest(http.MethodGet, "/api/sales/"+sale.ID+"/receipt", nil)
		req.Header.Set("Authorization", "Bearer "+cashier)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "recibo_INV-1001.pdf")
		pdf, _ := io.ReadAll(resp.Body)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	})

	t.Run("venta inexistente es 404", func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/sales/no-such-sale", cashier, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", errorCode(t, body))
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseOrderFlow(t *testing.T) {
	app := newSeededApp(t)
	clerk := login(t, app, "clerk")

	create := func() dto.PurchaseOrderResponse {
		status, body := call(t, app, http.MethodPost, "/api/purchase-orders", clerk, map[string]any{
			"supplier_id": "s1",
			"items":       []map[string]any{{"product_id": "p2", "quantity": 20, "unit_cost": "1200.00"}},
		})
		require.Equal(t, http.StatusCreated, status, string(body))
		var po dto.PurchaseOrderResponse
		require.NoError(t, json.Unmarshal(body, &po))
		return po
	}

	po := create()
	assert.Equal(t, "PO-2001", po.PONumber)
	assert.Equal(t, "Pending", po.Status)
	assert.True(t, decimal.RequireFromString("24000").Equal(po.TotalAmount))
	assert.Equal(t, 5, getProduct(t, app, clerk, "p2").Stock, "crear la orden no mueve stock")

	t.Run("recibir suma stock y es idempotente", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", clerk, nil)
		require.Equal(t, http.StatusOK, status, string(body))
		var got dto.PurchaseOrderResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Received", got.Status)
		assert.NotNil(t, got.ReceivedDate)
		assert.Equal(t, 25, getProduct(t, app, clerk, "p2").Stock)

		status, _ = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", clerk, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, 25, getProduct(t, app, clerk, "p2").Stock)
	})

	t.Run("cancelar una orden recibida es 409", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/cancel", clerk, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "INVALID_STATE_TRANSITION", errorCode(t, body))
	})

	t.Run("cancelar una pendiente no mueve stock y luego no se puede recibir", func(t *testing.T) {
		other := create()
		assert.Equal(t, "PO-2002", other.PONumber)

		status, body := call(t, app, http.MethodPost, "/api/purchase-orders/"+other.ID+"/cancel", clerk, nil)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Contains(t, string(body), "Cancelled")

		status, body = call(t, app, http.MethodPost, "/api/purchase-orders/"+other.ID+"/receive", clerk, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "INVALID_STATE_TRANSITION", errorCode(t, body))
		assert.Equal(t, 25, getProduct(t, app, clerk, "p2").Stock)
	})

	t.Run("listado filtrado por estado", func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/purchase-orders?status=Cancelled", clerk, nil)
		require.Equal(t, http.StatusOK, status)
		var list []dto.PurchaseOrderResponse
		require.NoError(t, json.Unmarshal(body, &list))
		require.Len(t, list, 1)
		assert.Equal(t, "PO-2002", list[0].PONumber)

		status, body = call(t, app, http.MethodGet, "/api/purchase-orders?status=Lost", clerk, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION", errorCode(t, body))
	})

	t.Run("proveedor inexistente es 404", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPost, "/api/purchase-orders", clerk, map[string]any{
			"supplier_id": "s9",
			"items":       []map[string]any{{"product_id": "p2", "quantity": 1, "unit_cost": "1"}},
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("el cajero no crea órdenes", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPost, "/api/purchase-orders", login(t, app, "cashier"), map[string]any{
			"supplier_id": "s1",
			"items":       []map[string]any{{"product_id": "p2", "quantity": 1, "unit_cost": "1"}},
		})
		assert.Equal(t, http.StatusForbidden, status)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustmentsAndReports(t *testing.T) {
	app := newSeededApp(t)
	admin := login(t, app, "admin")
	cashier := login(t, app, "cashier")

	t.Run("ajuste negativo registra y descuenta", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/inventory/adjustments", admin, map[string]any{
			"product_id": "p4", "quantity_change": -3, "reason": "mercancía dañada",
		})
		require.Equal(t, http.StatusCreated, status, string(body))
		assert.Equal(t, 27, getProduct(t, app, admin, "p4").Stock)
	})

	t.Run("ajuste en cero o sin motivo es 400", func(t *testing.T) {
		for _, in := range []map[string]any{
			{"product_id": "p4", "quantity_change": 0, "reason": "x"},
			{"product_id": "p4", "quantity_change": 1},
		} {
			status, body := call(t, app, http.MethodPost, "/api/inventory/adjustments", admin, in)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "VALIDATION", errorCode(t, body))
		}
	})

	t.Run("ajuste que deja stock negativo es 409", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/inventory/adjustments", admin, map[string]any{
			"product_id": "p4", "quantity_change": -100, "reason": "conteo",
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))
	})

	t.Run("el cajero no ajusta inventario", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPost, "/api/inventory/adjustments", cashier, map[string]any{
			"product_id": "p4", "quantity_change": 1, "reason": "x",
		})
		assert.Equal(t, http.StatusForbidden, status)
	})

	// Una venta para alimentar los reportes.
	status, body := call(t, app, http.MethodPost, "/api/sales", cashier, map[string]any{
		"items":           []map[string]any{{"product_id": "p3", "quantity": 4}},
		"amount_tendered": "5000",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	t.Run("conciliación consistente", func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/reports/reconcile", admin, nil)
		require.Equal(t, http.StatusOK, status, string(body))
		var rec dto.ReconcileResponse
		require.NoError(t, json.Unmarshal(body, &rec))
		assert.True(t, rec.Consistent)
		assert.Empty(t, rec.Discrepancies)

		status, _ = call(t, app, http.MethodGet, "/api/reports/reconcile", cashier, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("unidades vendidas y dashboard", func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/reports/units-sold", admin, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "Organic Coffee Beans")

		status, body = call(t, app, http.MethodGet, "/api/reports/dashboard", admin, nil)
		require.Equal(t, http.StatusOK, status)
		var m dto.DashboardStatsDTO
		require.NoError(t, json.Unmarshal(body, &m))
		assert.Equal(t, 1, m.TodaySalesCount)
		assert.Equal(t, 5, m.TotalProducts)
		assert.Equal(t, 1, m.LowStockCount, "solo el teclado está en o bajo su nivel de reorden")
	})

	t.Run("low-stock sugiere reposición", func(t *testing.T) {
		status, body := call(t, app, http.MethodGet, "/api/products/low-stock", admin, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "E002")
		assert.Contains(t, string(body), `"suggested_order_qty":25`)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog(t *testing.T) {
	app := newSeededApp(t)
	admin := login(t, app, "admin")

	t.Run("código duplicado es 409", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/products", admin, map[string]any{
			"code": "E001", "name": "Otro mouse", "category_id": "c1", "supplier_id": "s1",
			"unit_price": "10", "stock": 1, "reorder_level": 1,
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "DUPLICATE", errorCode(t, body))
	})

	t.Run("crear producto y categoría", func(t *testing.T) {
		status, body := call(t, app, http.MethodPost, "/api/categories", admin, map[string]any{"name": "Toys"})
		require.Equal(t, http.StatusCreated, status, string(body))

		status, body = call(t, app, http.MethodPost, "/api/products", admin, map[string]any{
			"code": "E010", "name": "Webcam", "category_id": "c1", "supplier_id": "s1",
			"unit_price": "999.50", "stock": 7, "reorder_level": 2,
		})
		require.Equal(t, http.StatusCreated, status, string(body))
		var p dto.ProductResponse
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, 7, getProduct(t, app, admin, p.ID).Stock)
	})

	t.Run("categorías solo para el administrador", func(t *testing.T) {
		status, _ := call(t, app, http.MethodGet, "/api/categories", login(t, app, "clerk"), nil)
		assert.Equal(t, http.StatusForbidden, status)
	})
}
