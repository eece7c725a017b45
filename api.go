package gateway

import (
	"net/http"
	"strconv"

	"github.com/Animesh-Parashar/Basis-Zero/common"
	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

func (g *Gateway) runAPI(port string) {
	r := g.engine
	r.Use(common.CORSMiddleware())
	v1 := r.Group("/")
	{
		v1.POST("/init", g.initSigner)
		v1.GET("/balance/:address", g.getBalance)
		v1.POST("/deposit", g.deposit)
		v1.POST("/transfer-to-vault", g.transferToVault)
		v1.POST("/attestation", g.postAttestation)
		v1.GET("/info", g.getInfo)

		// price feed, unrelated to the cross-chain flow
		v1.GET("/market/:tokenId/price", g.getMarketPrice)
		v1.POST("/market/resolve", g.resolveMarket)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func (g *Gateway) initSigner(c *gin.Context) {
	req := schema.ReqInit{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if req.PrivateKey == "" {
		errorResponse(c, schema.ErrNullBody.Error())
		return
	}
	addr, err := g.Initialize(req.PrivateKey)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, schema.RespInit{Success: true, Address: addr.Hex()})
}

func (g *Gateway) getBalance(c *gin.Context) {
	address := c.Param("address")
	if len(address) == 0 {
		errorResponse(c, "invalid_address")
		return
	}
	ub := g.GetUnifiedBalance(address)

	chainBalances := make(map[string]string, len(ub.PerDomain))
	for domainId, bal := range ub.PerDomain {
		chainBalances[strconv.FormatUint(uint64(domainId), 10)] = bal.String()
	}
	c.JSON(http.StatusOK, schema.RespBalance{
		Address:       ub.Address,
		TotalBalance:  ub.TotalBalance.String(),
		ChainBalances: chainBalances,
		LastUpdated:   ub.LastUpdated.Unix(),
	})
}

func (g *Gateway) deposit(c *gin.Context) {
	req := schema.ReqDeposit{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	resp, err := g.InitiateDeposit(req.UserAddress, req.SourceChain, req.Amount)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (g *Gateway) transferToVault(c *gin.Context) {
	req := schema.ReqTransferToVault{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	attestations, err := g.TransferToVault(req.UserAddress, req.Sources, req.TotalAmount)
	if err != nil {
		switch err.(type) {
		case schema.ExternalApiError:
			internalErrorResponse(c, err.Error())
		default:
			errorResponse(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, schema.RespTransferToVault{Success: true, Attestations: attestations})
}

// postAttestation forwards pre-signed burn intents and passes the gateway's
// reply through untouched.
func (g *Gateway) postAttestation(c *gin.Context) {
	req := schema.ReqAttestation{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if len(req.BurnIntents) == 0 {
		errorResponse(c, schema.ErrNullBody.Error())
		return
	}
	by, err := g.api.TransferRaw(req.BurnIntents)
	if err != nil {
		metricExternalApiError("transfer")
		internalErrorResponse(c, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", by)
}

func (g *Gateway) getInfo(c *gin.Context) {
	by, err := g.api.InfoRaw()
	if err != nil {
		metricExternalApiError("info")
		internalErrorResponse(c, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", by)
}

func (g *Gateway) getMarketPrice(c *gin.Context) {
	tokenId := c.Param("tokenId")
	price, err := g.market.Midpoint(tokenId)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, schema.RespMarketPrice{TokenId: tokenId, Price: price.String()})
}

func (g *Gateway) resolveMarket(c *gin.Context) {
	req := schema.ReqResolve{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	threshold, err := decimal.NewFromString(req.Threshold)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	resp, err := g.market.Resolve(req.TokenId, threshold)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
