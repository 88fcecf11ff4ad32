package urls

// Reference URLs for the Brussels indicative rent grid and related
// housing resources.

// GridMethodology explains how the indicative rent grid is built
// from the regional rent observatory survey data.
const GridMethodology = "https://loyers.brussels/methodologie/"

// IndexationRules covers when and how a Brussels residential lease
// may be indexed, including the energy-class restrictions.
const IndexationRules = "https://logement.brussels/louer/indexation-du-loyer/"

// MediationService is the regional rental mediation service for
// tenants whose rent sits above the reference band.
const MediationService = "https://logement.brussels/louer/commission-paritaire-locative/"

// EnergyCertificate explains the PEB energy performance certificate
// classes referenced by the questionnaire.
const EnergyCertificate = "https://environnement.brussels/thematiques/batiment-et-energie/performance-energetique-des-batiments-peb"
