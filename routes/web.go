package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const matcherHTMLPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8" />
<title>Address Matcher Test</title>
<style>body{font-family:sans-serif;margin:2rem;}textarea{width:100%;min-height:8rem;}pre{background:#f4f4f4;padding:1rem;border:1px solid #ccc;white-space:pre-wrap;word-break:break-word;}button{margin-top:0.5rem;padding:0.4rem 0.8rem;}</style></head>
<body><h1>Address Matcher Test</h1>
<form id="matchForm"><label for="addressInput">Paste an address (or entire row):</label><br/>
<textarea id="addressInput" placeholder="601 NE 1 AVE, Miami, FL 33132"></textarea><br/>
<button type="submit">Match Address</button></form>
<pre id="responseBox">HTTP status will appear here.</pre>
<script>
const form=document.getElementById('matchForm');
const textarea=document.getElementById('addressInput');
const output=document.getElementById('responseBox');
form.addEventListener('submit',async(event)=>{
  event.preventDefault();
  const address=textarea.value;
  if(!address.trim()){output.textContent='Enter an address first.';return;}
  output.textContent='Submitting...';
  try{
    const response=await fetch('/match',{method:'POST',headers:{'Content-Type':'text/plain; charset=utf-8'},body:address});
    const text=await response.text();
    output.textContent='HTTP '+response.status+' '+response.statusText+'\n\n'+text;
  }catch(error){output.textContent='Request failed: '+error;}
});
</script></body></html>
`

// SetupWebRoutes serves the HTML test page at / and /index.html, the Go
// port of original_source's MATCHER_HTML_PAGE.
func SetupWebRoutes(router *gin.Engine) {
	serveHTML := func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(matcherHTMLPage))
	}
	router.GET("/", serveHTML)
	router.GET("/index.html", serveHTML)
}
