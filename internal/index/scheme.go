package index

var (
	bBuild      = []byte("build")      // "last" -> BuildRecord
	bPages      = []byte("pages")      // posKey -> PageRecord
	bURL        = []byte("url")        // url -> posKey
	bNav        = []byte("nav")        // posKey -> url
	bCollection = []byte("collection") // name -> sub-bucket of posKey
)

var keyLast = []byte("last")
