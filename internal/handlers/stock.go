package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cestas/internal/service"
)

/* =========================
   STOCK ORDER REQUESTS
========================= */

func SubmitStockOrder(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /estoque/pedidos"
		defer handlePanic(c, route)

		var input service.SubmitStockOrderInput
		if !bindJSON(c, route, &input) {
			return
		}

		order, err := svc.SubmitOrder(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[%s] stored order=%s suppliers=%d", route, order.ID, len(order.OrderData))
		c.JSON(http.StatusCreated, gin.H{"message": "Pedido enviado com sucesso!", "id": order.ID})
	}
}

func ListStockOrders(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /estoque/pedidos"
		defer handlePanic(c, route)

		orders, err := svc.ListOrders(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

func StockFormData(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /estoque/dados-formulario"
		defer handlePanic(c, route)

		data, err := svc.FormData(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

func StockStats(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/estoque-stats"
		defer handlePanic(c, route)

		stats, err := svc.Stats(c.Request.Context(), queryValue(c, "startDate"), queryValue(c, "endDate"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

/* =========================
   SUPPLIERS
========================= */

// ListSuppliers returns one supplier when ?id is given, otherwise all.
func ListSuppliers(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /estoque/fornecedores"
		defer handlePanic(c, route)

		if id := queryValue(c, "id"); id != "" {
			supplier, err := svc.GetSupplier(c.Request.Context(), id)
			if err != nil {
				respondServiceError(c, route, err)
				return
			}
			c.JSON(http.StatusOK, supplier)
			return
		}

		suppliers, err := svc.ListSuppliers(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": suppliers})
	}
}

func CreateSupplier(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /estoque/fornecedores"
		defer handlePanic(c, route)

		var input service.CreateSupplierInput
		if !bindJSON(c, route, &input) {
			return
		}

		supplier, err := svc.CreateSupplier(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, supplier)
	}
}

func DeleteSupplier(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /estoque/fornecedores"
		defer handlePanic(c, route)

		if err := svc.DeleteSupplier(c.Request.Context(), c.Query("id")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondMessage(c, http.StatusOK, "Fornecedor e seus itens foram excluídos.")
	}
}

/* =========================
   ITEMS
========================= */

func ListStockItems(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /estoque/itens"
		defer handlePanic(c, route)

		items, err := svc.ListItems(c.Request.Context(), c.Query("supplierId"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

func CreateStockItem(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /estoque/itens"
		defer handlePanic(c, route)

		var input service.CreateItemInput
		if !bindJSON(c, route, &input) {
			return
		}

		item, err := svc.CreateItem(c.Request.Context(), input)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func DeleteStockItem(svc *service.StockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /estoque/itens"
		defer handlePanic(c, route)

		if err := svc.DeleteItem(c.Request.Context(), c.Query("id")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondMessage(c, http.StatusOK, "Item excluído com sucesso.")
	}
}
