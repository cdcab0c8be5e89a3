package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/orgerrors"
	"github.com/erraggy/orgtree/registry"
	"github.com/erraggy/orgtree/report"
	"github.com/erraggy/orgtree/validator"
)

// Wrapper elements of the node editing requests.
const (
	tagNewNode    = "NewNode"
	tagRemoveNode = "RemoveNode"
	attrParent    = "parent"
	attrPath      = "path"
)

// TreeResponse is the JSON envelope of a stored tree.
type TreeResponse struct {
	ID       int64  `json:"id"`
	TreeName string `json:"treeName"`
	TreeData string `json:"treeData"`
}

func envelope(tree *document.Tree) (*TreeResponse, error) {
	data, err := document.MarshalTree(tree)
	if err != nil {
		return nil, err
	}
	return &TreeResponse{ID: tree.ID, TreeName: tree.NameValue(), TreeData: string(data)}, nil
}

// readBody reads the request body within the size limit. An empty body is
// a validation error.
func (s *Server) readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &orgerrors.ValidationError{Field: "body", Message: "XML data is required"}
	}
	return body, nil
}

func treeID(c *gin.Context) (int64, error) {
	return registry.ParseID(c.Param("id"))
}

func (s *Server) listTrees(c *gin.Context) {
	summaries, err := s.reg.List()
	if err != nil {
		s.fail(c, "list", err)
		return
	}
	if len(summaries) == 0 {
		s.fail(c, "list", &orgerrors.NotFoundError{Resource: "tree", Message: "no trees found"})
		return
	}

	out := make([]*TreeResponse, 0, len(summaries))
	for _, sum := range summaries {
		tree, err := s.reg.Get(sum.ID)
		if err != nil {
			// Deleted while listing.
			continue
		}
		env, err := envelope(tree)
		if err != nil {
			s.fail(c, "list", err)
			return
		}
		out = append(out, env)
	}
	s.record("list", "ok")
	c.JSON(http.StatusOK, out)
}

func (s *Server) getTree(c *gin.Context) {
	id, err := treeID(c)
	if err != nil {
		s.fail(c, "get", err)
		return
	}
	tree, err := s.reg.Get(id)
	if err != nil {
		s.fail(c, "get", err)
		return
	}
	env, err := envelope(tree)
	if err != nil {
		s.fail(c, "get", err)
		return
	}
	s.record("get", "ok")
	c.JSON(http.StatusOK, env)
}

func (s *Server) createTree(c *gin.Context) {
	body, err := s.readBody(c)
	if err != nil {
		s.fail(c, "create", err)
		return
	}
	id, err := s.reg.Create(body)
	if err != nil {
		s.fail(c, "create", err)
		return
	}
	tree, err := s.reg.Get(id)
	if err != nil {
		s.fail(c, "create", err)
		return
	}
	env, err := envelope(tree)
	if err != nil {
		s.fail(c, "create", err)
		return
	}
	s.record("create", "ok")
	c.Header("Location", fmt.Sprintf("%s/%d", BasePath, id))
	c.JSON(http.StatusCreated, env)
}

func (s *Server) updateTree(c *gin.Context) {
	id, err := treeID(c)
	if err != nil {
		s.fail(c, "update", err)
		return
	}
	body, err := s.readBody(c)
	if err != nil {
		s.fail(c, "update", err)
		return
	}
	if _, err := s.reg.Update(id, body); err != nil {
		s.fail(c, "update", err)
		return
	}
	s.record("update", "ok")
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteTree(c *gin.Context) {
	id, err := treeID(c)
	if err != nil {
		s.fail(c, "delete", err)
		return
	}
	if err := s.reg.Delete(id); err != nil {
		s.fail(c, "delete", err)
		return
	}
	s.record("delete", "ok")
	c.Status(http.StatusNoContent)
}

// addNode handles <NewNode parent="path"><person .../></NewNode>. An absent
// or empty parent inserts a top-level person.
func (s *Server) addNode(c *gin.Context) {
	id, err := treeID(c)
	if err != nil {
		s.fail(c, "insert", err)
		return
	}
	root, err := s.wrapper(c, tagNewNode)
	if err != nil {
		s.fail(c, "insert", err)
		return
	}

	var parent *pathexpr.Path
	if expr, _ := root.Attr(attrParent); expr != "" {
		if parent, err = pathexpr.Parse(expr); err != nil {
			s.fail(c, "insert", err)
			return
		}
	}
	if len(root.Children) != 1 {
		s.fail(c, "insert", &orgerrors.ValidationError{
			Path:    tagNewNode,
			Field:   document.TagPerson,
			Message: fmt.Sprintf("<%s> must wrap exactly one <%s>, got %d elements", tagNewNode, document.TagPerson, len(root.Children)),
		})
		return
	}
	person, err := validator.LoadPersonElement(root.Children[0])
	if err != nil {
		s.fail(c, "insert", err)
		return
	}

	out, err := s.reg.Insert(id, parent, person)
	if err != nil {
		s.fail(c, "insert", err)
		return
	}
	s.record("insert", "ok")
	c.Data(http.StatusOK, report.FormatXML.ContentType(), out)
}

// removeNode handles <RemoveNode path="path"/>.
func (s *Server) removeNode(c *gin.Context) {
	id, err := treeID(c)
	if err != nil {
		s.fail(c, "remove", err)
		return
	}
	root, err := s.wrapper(c, tagRemoveNode)
	if err != nil {
		s.fail(c, "remove", err)
		return
	}
	expr, _ := root.Attr(attrPath)
	if expr == "" {
		s.fail(c, "remove", &orgerrors.ValidationError{
			Path:    tagRemoveNode,
			Field:   attrPath,
			Message: "path attribute is required",
		})
		return
	}
	if err := s.reg.RemoveNode(id, expr); err != nil {
		s.fail(c, "remove", err)
		return
	}
	s.record("remove", "ok")
	c.Status(http.StatusNoContent)
}

// wrapper reads the body and checks its root element is name.
func (s *Server) wrapper(c *gin.Context, name string) (*document.Element, error) {
	body, err := s.readBody(c)
	if err != nil {
		return nil, err
	}
	root, err := document.ParseElementBytes(body)
	if err != nil {
		return nil, err
	}
	if root.Name != name {
		return nil, &orgerrors.ValidationError{
			Field:   "root",
			Message: fmt.Sprintf("root element must be <%s>, got <%s>", name, root.Name),
		}
	}
	return root, nil
}

func (s *Server) treeReport(c *gin.Context) {
	id, err := treeID(c)
	if err != nil {
		s.fail(c, "report", err)
		return
	}
	format := s.defaultFormat
	if q := c.Query("format"); q != "" {
		if format, err = report.ParseFormat(q); err != nil {
			s.fail(c, "report", err)
			return
		}
	}
	out, err := s.reg.Report(id, c.Query("path"), format)
	if err != nil {
		s.fail(c, "report", err)
		return
	}
	s.record("report", "ok")
	c.Header("X-Tree-ID", strconv.FormatInt(id, 10))
	c.Data(http.StatusOK, format.ContentType(), out)
}
