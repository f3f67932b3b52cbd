package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkfolio/backend/database"
	"linkfolio/backend/models"
	"linkfolio/backend/utils"
)

const (
	subdomainTakenMsg = "This subdomain is already taken."
	domainTakenMsg    = "This custom domain is already in use."
)

// conflictMessage names the field behind a unique-index violation the
// pre-insert lookups missed. Only the supplied field can have fired.
func conflictMessage(subdomain, customDomain *string) string {
	if subdomain == nil && customDomain != nil {
		return domainTakenMsg
	}
	return subdomainTakenMsg
}

func CreateWebsite(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateWebsiteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, utils.BindingMessage(err))
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		profile, err := store.GetProfile(ctx, req.ProfileID)
		if err != nil {
			log.Printf("profile get error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the profile.")
			return
		}
		if profile == nil {
			utils.Fail(c, http.StatusNotFound, "Profile not found.")
			return
		}

		if req.Subdomain != nil {
			taken, err := store.GetWebsiteBySubdomain(ctx, *req.Subdomain)
			if err != nil {
				log.Printf("subdomain lookup error: %v", err)
				utils.Fail(c, http.StatusInternalServerError, "Failed to create the website.")
				return
			}
			if taken != nil {
				utils.Fail(c, http.StatusBadRequest, subdomainTakenMsg)
				return
			}
		}
		if req.CustomDomain != nil {
			taken, err := store.GetWebsiteByCustomDomain(ctx, *req.CustomDomain)
			if err != nil {
				log.Printf("custom domain lookup error: %v", err)
				utils.Fail(c, http.StatusInternalServerError, "Failed to create the website.")
				return
			}
			if taken != nil {
				utils.Fail(c, http.StatusBadRequest, domainTakenMsg)
				return
			}
		}

		var userID int64
		if profile.UserID != nil {
			userID = *profile.UserID
		}
		site, err := store.CreateWebsite(ctx, models.InsertWebsite{
			UserID:       userID,
			ProfileID:    req.ProfileID,
			TemplateID:   req.TemplateID,
			Subdomain:    req.Subdomain,
			CustomDomain: req.CustomDomain,
			Settings:     req.Settings,
		})
		if errors.Is(err, database.ErrConflict) {
			utils.Fail(c, http.StatusBadRequest, conflictMessage(req.Subdomain, req.CustomDomain))
			return
		}
		if err != nil {
			log.Printf("website create error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to create the website.")
			return
		}
		utils.OK(c, http.StatusCreated, "Website created.", site)
	}
}

func UpdateWebsite(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var req models.UpdateWebsiteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, utils.BindingMessage(err))
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		if req.Subdomain != nil {
			taken, err := store.GetWebsiteBySubdomain(ctx, *req.Subdomain)
			if err != nil {
				log.Printf("subdomain lookup error: %v", err)
				utils.Fail(c, http.StatusInternalServerError, "Failed to update the website.")
				return
			}
			if taken != nil && taken.ID != id {
				utils.Fail(c, http.StatusBadRequest, subdomainTakenMsg)
				return
			}
		}
		if req.CustomDomain != nil {
			taken, err := store.GetWebsiteByCustomDomain(ctx, *req.CustomDomain)
			if err != nil {
				log.Printf("custom domain lookup error: %v", err)
				utils.Fail(c, http.StatusInternalServerError, "Failed to update the website.")
				return
			}
			if taken != nil && taken.ID != id {
				utils.Fail(c, http.StatusBadRequest, domainTakenMsg)
				return
			}
		}

		site, err := store.UpdateWebsite(ctx, id, models.WebsiteUpdate{
			TemplateID:   req.TemplateID,
			Subdomain:    req.Subdomain,
			CustomDomain: req.CustomDomain,
			Settings:     req.Settings,
			Published:    req.Published,
		})
		if errors.Is(err, database.ErrNotFound) {
			utils.Fail(c, http.StatusNotFound, "Website not found.")
			return
		}
		if errors.Is(err, database.ErrConflict) {
			utils.Fail(c, http.StatusBadRequest, conflictMessage(req.Subdomain, req.CustomDomain))
			return
		}
		if err != nil {
			log.Printf("website update error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to update the website.")
			return
		}
		utils.OK(c, http.StatusOK, "Website updated.", site)
	}
}

func ListUserWebsites(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		sites, err := store.GetWebsitesByUserID(ctx, id)
		if err != nil {
			log.Printf("websites list error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load websites.")
			return
		}
		utils.OK(c, http.StatusOK, "Websites loaded.", sites)
	}
}
