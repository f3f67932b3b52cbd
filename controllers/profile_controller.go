package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linkfolio/backend/database"
	"linkfolio/backend/models"
	"linkfolio/backend/services"
	"linkfolio/backend/utils"
)

func CreateProfile(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, utils.BindingMessage(err))
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		profile, err := store.CreateProfile(ctx, models.InsertProfile{
			LinkedinURL: req.LinkedinURL,
			UserID:      req.UserID,
		})
		if err != nil {
			log.Printf("profile create error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to create the profile.")
			return
		}
		utils.OK(c, http.StatusCreated, "Profile created.", profile)
	}
}

func GetProfile(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		profile, err := store.GetProfile(ctx, id)
		if err != nil {
			log.Printf("profile get error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the profile.")
			return
		}
		if profile == nil {
			utils.Fail(c, http.StatusNotFound, "Profile not found.")
			return
		}
		utils.OK(c, http.StatusOK, "Profile loaded.", profile)
	}
}

// FetchProfileData imports the profile behind the stored URL and saves
// it as the profile's original data.
func FetchProfileData(store database.Storage, profiles *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		profile, err := store.GetProfile(ctx, id)
		if err != nil {
			log.Printf("profile get error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the profile.")
			return
		}
		if profile == nil {
			utils.Fail(c, http.StatusNotFound, "Profile not found.")
			return
		}

		data, err := profiles.FetchProfile(c.Request.Context(), profile.LinkedinURL)
		if err != nil {
			log.Printf("profile fetch error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to fetch profile data. Please try again later.")
			return
		}
		services.Normalize(data)

		// The read context has been ticking since before the fetch;
		// the save gets its own budget.
		sctx, scancel := storeCtx(c)
		defer scancel()
		updated, err := store.UpdateProfile(sctx, id, models.ProfileUpdate{OriginalData: data})
		if err != nil {
			log.Printf("profile update error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to save the fetched profile data.")
			return
		}
		utils.OK(c, http.StatusOK, "Profile data fetched.", updated)
	}
}

// SaveSettings creates the profile's enhancement settings on first call
// and updates them afterwards. 201 on create, 200 on update.
func SaveSettings(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var req models.SettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, utils.BindingMessage(err))
			return
		}
		if msg := validateSettings(req); msg != "" {
			utils.Fail(c, http.StatusBadRequest, msg)
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		profile, err := store.GetProfile(ctx, id)
		if err != nil {
			log.Printf("profile get error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the profile.")
			return
		}
		if profile == nil {
			utils.Fail(c, http.StatusNotFound, "Profile not found.")
			return
		}

		existing, err := store.GetEnhancementSettingsByProfile(ctx, id)
		if err != nil {
			log.Printf("settings lookup error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the enhancement settings.")
			return
		}

		if existing != nil {
			updated, err := store.UpdateEnhancementSettings(ctx, existing.ID, models.SettingsUpdate{
				Tone:                  req.Tone,
				Focus:                 req.Focus,
				Length:                req.Length,
				HighlightAchievements: req.HighlightAchievements,
				EmphasizeSkills:       req.EmphasizeSkills,
				IncludeMetrics:        req.IncludeMetrics,
			})
			if err != nil {
				log.Printf("settings update error: %v", err)
				utils.Fail(c, http.StatusInternalServerError, "Failed to update the enhancement settings.")
				return
			}
			utils.OK(c, http.StatusOK, "Enhancement settings updated.", updated)
			return
		}

		var userID int64
		if profile.UserID != nil {
			userID = *profile.UserID
		}
		created, err := store.CreateEnhancementSettings(ctx, models.InsertEnhancementSettings{
			UserID:                userID,
			ProfileID:             id,
			Tone:                  req.Tone,
			Focus:                 req.Focus,
			Length:                req.Length,
			HighlightAchievements: req.HighlightAchievements,
			EmphasizeSkills:       req.EmphasizeSkills,
			IncludeMetrics:        req.IncludeMetrics,
		})
		if err != nil {
			log.Printf("settings create error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to save the enhancement settings.")
			return
		}
		utils.OK(c, http.StatusCreated, "Enhancement settings saved.", created)
	}
}

func validateSettings(req models.SettingsRequest) string {
	var violations []string
	if req.Tone != nil && !models.ValidTone(*req.Tone) {
		violations = append(violations, fmt.Sprintf("tone must be one of %s", strings.Join(models.Tones, ", ")))
	}
	if req.Focus != nil && !models.ValidFocus(*req.Focus) {
		violations = append(violations, fmt.Sprintf("focus must be one of %s", strings.Join(models.Focuses, ", ")))
	}
	if req.Length != nil && !models.ValidLength(*req.Length) {
		violations = append(violations, fmt.Sprintf("length must be one of %s", strings.Join(models.Lengths, ", ")))
	}
	return strings.Join(violations, "; ")
}

// EnhanceProfile rewrites the fetched profile data with the profile's
// saved settings (or the defaults) and stores the result.
func EnhanceProfile(store database.Storage, enhancer *services.Enhancer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		profile, err := store.GetProfile(ctx, id)
		if err != nil {
			log.Printf("profile get error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the profile.")
			return
		}
		if profile == nil {
			utils.Fail(c, http.StatusNotFound, "Profile not found.")
			return
		}
		if profile.OriginalData == nil {
			utils.Fail(c, http.StatusBadRequest, "Profile data has not been fetched yet.")
			return
		}

		settings, err := store.GetEnhancementSettingsByProfile(ctx, id)
		if err != nil {
			log.Printf("settings lookup error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the enhancement settings.")
			return
		}

		enhanced, err := enhancer.EnhanceProfile(c.Request.Context(), profile.OriginalData, services.OptionsFromSettings(settings))
		if err != nil {
			log.Printf("enhance error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, enhanceErrorMessage(err))
			return
		}

		// The model is allowed far longer than one storage op, so the
		// read context may already be expired here. Save on a fresh one.
		sctx, scancel := storeCtx(c)
		defer scancel()
		updated, err := store.UpdateProfile(sctx, id, models.ProfileUpdate{EnhancedData: enhanced})
		if err != nil {
			log.Printf("profile update error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to save the enhanced profile.")
			return
		}
		utils.OK(c, http.StatusOK, "Profile enhanced.", updated)
	}
}

func enhanceErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrTimeout):
		return "The enhancement service timed out. Please try again later."
	case errors.Is(err, services.ErrParse):
		return "The enhancement service returned an unexpected response. Please try again later."
	default:
		return "Failed to enhance profile content. Please try again later."
	}
}

func Recommendations(store database.Storage, enhancer *services.Enhancer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		profile, err := store.GetProfile(ctx, id)
		if err != nil {
			log.Printf("profile get error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the profile.")
			return
		}
		if profile == nil {
			utils.Fail(c, http.StatusNotFound, "Profile not found.")
			return
		}
		if profile.OriginalData == nil {
			utils.Fail(c, http.StatusBadRequest, "Profile data has not been fetched yet.")
			return
		}

		recs, err := enhancer.Recommendations(c.Request.Context(), profile.OriginalData)
		if err != nil {
			log.Printf("recommendations error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, enhanceErrorMessage(err))
			return
		}
		utils.OK(c, http.StatusOK, "Recommendations generated.", recs)
	}
}
