package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-catalog/failure"
	"github.com/goliatone/go-catalog/mutation"
	"github.com/goliatone/go-catalog/query"
	"github.com/google/uuid"
)

func invalidHeader() error {
	return failure.InvalidCredentials(errors.New("malformed authorization header"))
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "id", errors.New("must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func pageFrom(c *gin.Context) (query.Page, bool) {
	page := query.Page{After: c.Query("after")}
	if raw := c.Query("first"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "first", errors.New("must be an integer"))
			return page, false
		}
		page.First = n
	}
	return page, true
}

// found writes rec, or a 404 when the read came back empty.
func found[T any](c *gin.Context, kind string, rec *T, err error) {
	switch {
	case err != nil:
		writeError(c, err)
	case rec == nil:
		writeError(c, failure.NotFound(kind))
	default:
		c.JSON(http.StatusOK, rec)
	}
}

func listed[T any](c *gin.Context, conn query.Connection[T], err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

// mutated writes a mutation result, choosing the status from its failure kind.
func mutated[T any](c *gin.Context, okStatus int, res mutation.Result[T]) {
	status := okStatus
	if !res.Success {
		status, _ = statusFor(res.Failure)
	}
	c.JSON(status, res)
}

func deleted(c *gin.Context, res mutation.DeleteResult) {
	status := http.StatusOK
	if !res.Success {
		status, _ = statusFor(res.Failure)
	}
	c.JSON(status, res)
}

// bind decodes the JSON body into dst, writing a 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "body", err)
		return false
	}
	return true
}
