package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"linkfolio/backend/config"
	"linkfolio/backend/database"
	"linkfolio/backend/models"
	"linkfolio/backend/utils"
)

const tokenTTL = 24 * time.Hour

func RegisterUser(cfg config.Config, store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, utils.BindingMessage(err))
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		existing, err := store.GetUserByUsername(ctx, req.Username)
		if err != nil {
			log.Printf("user lookup error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to register. Please try again later.")
			return
		}
		if existing != nil {
			utils.Fail(c, http.StatusBadRequest, "This username is already taken.")
			return
		}

		user, err := store.CreateUser(ctx, models.InsertUser{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			Name:     req.Name,
		})
		if err != nil {
			log.Printf("user create error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to register. Please try again later.")
			return
		}
		token, err := utils.GenerateJWT(cfg.JWTSecret, user.ID, tokenTTL)
		if err != nil {
			log.Printf("jwt error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to register. Please try again later.")
			return
		}
		utils.OK(c, http.StatusCreated, "Account created.", gin.H{"token": token, "user": user})
	}
}

func Login(cfg config.Config, store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, utils.BindingMessage(err))
			return
		}
		ctx, cancel := storeCtx(c)
		defer cancel()

		user, err := store.GetUserByUsername(ctx, req.Username)
		if err != nil {
			log.Printf("user lookup error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to log in. Please try again later.")
			return
		}
		if user == nil || user.Password != req.Password {
			utils.Fail(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		token, err := utils.GenerateJWT(cfg.JWTSecret, user.ID, tokenTTL)
		if err != nil {
			log.Printf("jwt error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to log in. Please try again later.")
			return
		}
		utils.OK(c, http.StatusOK, "Logged in.", gin.H{"token": token, "user": user})
	}
}

func Me(store database.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		ctx, cancel := storeCtx(c)
		defer cancel()

		user, err := store.GetUser(ctx, uid)
		if err != nil {
			log.Printf("user get error: %v", err)
			utils.Fail(c, http.StatusInternalServerError, "Failed to load the account.")
			return
		}
		if user == nil {
			utils.Fail(c, http.StatusNotFound, "Account not found.")
			return
		}
		utils.OK(c, http.StatusOK, "Account loaded.", user)
	}
}
