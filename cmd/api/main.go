package main

import (
	"log"
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/memstore"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .envは任意。無くても環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var (
		productRepo   repo.ProductRepository
		saleRepo      repo.SaleRepository
		inventoryRepo repo.InventoryRepository
		txm           repo.TransactionManager
	)

	// DBが設定されていればPostgres、無ければメモリ＋スナップショット
	if cfg.DatabaseURL != "" || os.Getenv("POSTGRES_HOST") != "" {
		gormDB, err := db.Connect()
		if err != nil {
			panic(err)
		}
		if err := gormDB.AutoMigrate(
			&model.Product{},
			&model.Sale{},
			&model.SaleItem{},
		); err != nil {
			panic(err)
		}

		productRepo = infraRepo.NewProductGormRepository(gormDB)
		saleRepo = infraRepo.NewSaleGormRepository(gormDB)
		inventoryRepo = infraRepo.NewInventoryGormRepository(gormDB)
		txm = infraRepo.NewTxManagerGorm(gormDB)
	} else {
		store := memstore.Open(cfg.DataFile)
		productRepo = store.ProductRepo()
		saleRepo = store.SaleRepo()
		inventoryRepo = store.InventoryRepo()
		txm = store
		log.Printf("using snapshot file %s", cfg.DataFile)
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, idGen, clock)
	cartUC := usecase.NewCartUsecase(productRepo)
	saleUC := usecase.NewSaleUsecase(txm, idGen, clock)
	reportUC := usecase.NewReportUsecase(productRepo, saleRepo, clock, cfg.ShopName, cfg.LowStockThreshold)
	dataUC := usecase.NewDataUsecase(txm, clock)

	//Handler生成
	productH := handler.NewProductHandler(productUC, cfg.LowStockThreshold)
	cartH := handler.NewCartHandler(cartUC)
	saleH := handler.NewSaleHandler(saleUC, cartUC)
	reportH := handler.NewReportHandler(reportUC)
	dataH := handler.NewDataHandler(dataUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, productH, cartH, saleH, reportH, dataH); err != nil {
		panic(err)
	}
}
