package controllers

import (
	"net/http"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/services"

	"github.com/gin-gonic/gin"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// 列表（?q= 搜索标题/作者，?available=true 只看在架）
func (bc *BookController) ListBooks(c *gin.Context) {
	if c.Query("available") == "true" {
		books, err := bc.Books.GetAvailableBooks(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, app.H{"books": books})
		return
	}
	books, err := bc.Books.SearchBooks(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"books": books})
}

func (bc *BookController) GetBook(c *gin.Context) {
	b, err := bc.Books.GetBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookController) GetBookByISBN(c *gin.Context) {
	b, err := bc.Books.GetBookByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var in struct {
		Title         string `json:"title" binding:"required"`
		Author        string `json:"author" binding:"required"`
		ISBN          string `json:"isbn" binding:"required"`
		CoverImageURL string `json:"coverImageUrl"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b, err := bc.Books.AddBook(c.Request.Context(), in.Title, in.Author, in.ISBN, in.CoverImageURL)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	var in struct {
		Title         *string `json:"title"`
		Author        *string `json:"author"`
		ISBN          *string `json:"isbn"`
		CoverImageURL *string `json:"coverImageUrl"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	b, err := bc.Books.UpdateBook(c.Request.Context(), c.Param("id"), services.BookUpdate{
		Title:         in.Title,
		Author:        in.Author,
		ISBN:          in.ISBN,
		CoverImageURL: in.CoverImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	if err := bc.Books.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
