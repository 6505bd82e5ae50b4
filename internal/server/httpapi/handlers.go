package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/focusgroup/internal/api"
	"github.com/dmitrijs2005/focusgroup/internal/common"
	"github.com/dmitrijs2005/focusgroup/internal/server/services"
	"github.com/labstack/echo/v4"
)

func health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return common.NewFieldError("Invalid request body")
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewFieldError("Invalid id", "id")
	}
	return id, nil
}

func (s *Server) signUp(c echo.Context) error {
	var req api.SignUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := s.services.Users.SignUp(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) signIn(c echo.Context) error {
	var req api.SignInRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := s.services.Users.SignIn(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) me(c echo.Context) error {
	u, err := s.services.Users.Me(c.Request().Context(), identity(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) forgotPassword(c echo.Context) error {
	var req api.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := s.services.Users.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) verifyResetToken(c echo.Context) error {
	resp, err := s.services.Users.VerifyResetToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) resetPassword(c echo.Context) error {
	var req api.ResetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := s.services.Users.ResetPassword(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) listParticipants(c echo.Context) error {
	ps, err := s.services.Users.ListParticipants(c.Request().Context(), identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ps)
}

func (s *Server) getMenuSettings(c echo.Context) error {
	m, err := s.services.Settings.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) replaceMenuSettings(c echo.Context) error {
	var m api.MenuSettings
	if err := bind(c, &m); err != nil {
		return err
	}
	saved, err := s.services.Settings.Replace(c.Request().Context(), identity(c), m)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}

func (s *Server) submitInvitation(c echo.Context) error {
	var req api.InvitationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := s.services.Invitations.Submit(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) submitContact(c echo.Context) error {
	var req api.ContactRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := s.services.Contacts.Submit(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) uploadDocument(c echo.Context) error {
	fh, err := c.FormFile(api.UploadFileField)
	if err != nil {
		return common.NewFieldError("Please choose a file to upload", api.UploadFileField)
	}
	if fh.Size > common.MaxDocumentSize {
		return common.ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, common.MaxDocumentSize+1))
	if err != nil {
		return err
	}

	doc, err := s.services.Verification.Upload(c.Request().Context(), identity(c), services.Upload{
		DocumentType: api.DocumentType(c.FormValue(api.UploadTypeField)),
		FileName:     fh.Filename,
		ContentType:  fh.Header.Get(echo.HeaderContentType),
		Data:         data,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

func (s *Server) verificationStatus(c echo.Context) error {
	st, err := s.services.Verification.Status(c.Request().Context(), identity(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) userVerificationStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	st, err := s.services.Verification.UserStatus(c.Request().Context(), identity(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) reviewDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req api.ReviewDocumentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	doc, err := s.services.Verification.Review(c.Request().Context(), identity(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) documentURL(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := s.services.Verification.DocumentURL(c.Request().Context(), identity(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, api.DocumentURLResponse{URL: u})
}

func (s *Server) listMessages(c echo.Context) error {
	msgs, err := s.services.Messages.List(c.Request().Context(), identity(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

func (s *Server) sendMessage(c echo.Context) error {
	var req api.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := s.services.Messages.Send(c.Request().Context(), identity(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

func (s *Server) markMessageRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.services.Messages.MarkRead(c.Request().Context(), identity(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
