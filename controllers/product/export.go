package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/p-bittencourt/studious-waffle/middleware"
	"github.com/p-bittencourt/studious-waffle/models"
)

// ExportProducts streams the calling vendor's catalog as an xlsx download.
//
// GET /products/export-excel
func ExportProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := middleware.CurrentAccount(c)
		if !ok || account.Vendor == nil {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Vendor account required"})
			return
		}

		var products []models.Product
		if err := db.Where("vendor_id = ?", account.Vendor.ID).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Price", "Category", "SKU", "Tags",
			"Stock", "Status", "ViewsCount", "SalesCount", "DiscountPercentage", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(string(p.Category))
			if p.SKU != nil {
				row.AddCell().SetValue(*p.SKU)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(strings.Join(p.Tags, ","))
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(string(p.Status))
			row.AddCell().SetValue(p.ViewsCount)
			row.AddCell().SetValue(p.SalesCount)
			row.AddCell().SetValue(p.DiscountPercentage)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to write Excel file"})
			return
		}
	}
}
