package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"linkfolio/backend/database"
	"linkfolio/backend/models"
	"linkfolio/backend/utils"
)

const waitlistDuplicateMsg = "This email is already on our waitlist."

func JoinWaitlist(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.WaitlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, utils.BindingMessage(err))
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		existing, err := store.GetWaitlistEntryByEmail(ctx, req.Email)
		if err != nil {
			log.Printf("waitlist lookup error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "An error occurred while processing your request. Please try again later.")
			return
		}
		if existing != nil {
			utils.Fail(c, http.StatusBadRequest, waitlistDuplicateMsg)
			return
		}

		insert := models.InsertWaitlistEntry{Email: req.Email}
		if req.LinkedinURL != "" {
			insert.LinkedinURL = &req.LinkedinURL
		}
		if req.Profession != "" {
			insert.Profession = &req.Profession
		}
		entry, err := store.CreateWaitlistEntry(ctx, insert)
		if errors.Is(err, database.ErrConflict) {
			// Unique index caught a concurrent duplicate the lookup missed.
			utils.Fail(c, http.StatusBadRequest, waitlistDuplicateMsg)
			return
		}
		if err != nil {
			log.Printf("waitlist insert error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "An error occurred while processing your request. Please try again later.")
			return
		}
		utils.OK(c, http.StatusCreated, "Thank you for joining our waitlist!", gin.H{"id": entry.ID})
	}
}

// ExportWaitlist streams every waitlist entry as an XLSX attachment.
func ExportWaitlist(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := storeCtx(c)
		defer cancel()

		entries, err := store.ListWaitlistEntries(ctx)
		if err != nil {
			log.Printf("waitlist list error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to export the waitlist.")
			return
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)
		if err := f.SetSheetRow(sheet, "A1", &[]any{"ID", "Email", "LinkedIn URL", "Profession", "Created At"}); err != nil {
			log.Printf("waitlist export error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to export the waitlist.")
			return
		}
		for i, e := range entries {
			row := []any{e.ID, e.Email, strDeref(e.LinkedinURL), strDeref(e.Profession), e.CreatedAt}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
				log.Printf("waitlist export error: %v", err)
				utils.Fail(c, http.StatusInternalServerError, "Failed to export the waitlist.")
				return
			}
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			log.Printf("waitlist export error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to export the waitlist.")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="waitlist.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}

func strDeref(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}
