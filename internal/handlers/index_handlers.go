package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Toy Store API</title></head>
<body>
<h1>Toy Store API</h1>
<p>Obtain a token with POST /auth/token/ and send it as "Authorization: Bearer &lt;token&gt;".</p>
<ul>
<li>/clients/</li>
<li>/sales/</li>
<li>/stats/sales-per-day/</li>
<li>/stats/clients/</li>
</ul>
</body>
</html>
`

// Index serves the public banner page.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

// Ping is the liveness probe.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
